package adminController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
	"komodohub/utils"
)

// GetArticles lists every article with its author for moderation
func GetArticles(c *fiber.Ctx) error {
	type ArticleRow struct {
		ID         uint      `json:"id"`
		Title      string    `json:"title"`
		Content    string    `json:"content"`
		AuthorID   uint      `json:"author_id"`
		AuthorName string    `json:"author_name"`
		OrgName    string    `json:"org_name"`
		CreatedAt  time.Time `json:"created_at"`
		UpdatedAt  time.Time `json:"updated_at"`
	}

	var articles []ArticleRow
	err := database.Database.Db.Table("articles").
		Select(`articles.id, articles.title, articles.content, articles.author_id,
			users.full_name as author_name, users.org_name,
			articles.created_at, articles.updated_at`).
		Joins("JOIN users ON users.id = articles.author_id").
		Where("articles.deleted_at IS NULL").
		Order("articles.created_at DESC").
		Scan(&articles).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch articles!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Articles fetched successfully!", fiber.Map{
		"articles": articles,
		"total":    len(articles),
	})
}

// UpdateArticle lets an admin edit any article
func UpdateArticle(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	articleID := c.Locals("articleID").(uint)

	reqData := c.Locals("validatedArticle").(*struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	})

	db := database.Database.Db

	var article models.Article
	if err := db.First(&article, articleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	updates := map[string]interface{}{
		"title":   reqData.Title,
		"content": reqData.Content,
	}
	if err := db.Model(&article).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update article!", nil)
	}

	utils.LogSecurityEvent(db, &adminID, "admin_article_updated",
		"Admin edited article "+article.Title, c.IP(), c.Get("User-Agent"))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article updated successfully!", article)
}

// DeleteArticle lets an admin remove any article
func DeleteArticle(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	articleID := c.Locals("articleID").(uint)

	db := database.Database.Db

	var article models.Article
	if err := db.First(&article, articleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	if err := db.Delete(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete article!", nil)
	}

	utils.LogSecurityEvent(db, &adminID, "admin_article_deleted",
		"Admin removed article "+article.Title, c.IP(), c.Get("User-Agent"))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article deleted successfully!", nil)
}
