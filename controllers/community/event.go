package communityController

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
	communityValidator "komodohub/validators/community"
)

// GetMyEvents lists the calling org's events with participant counts
func GetMyEvents(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type EventWithCount struct {
		models.Event
		ParticipantCount int64 `json:"participant_count"`
	}

	var events []EventWithCount
	err := database.Database.Db.Model(&models.Event{}).
		Select(`events.*,
			(SELECT COUNT(*) FROM event_participants WHERE event_participants.event_id = events.id) as participant_count`).
		Where("events.organizer_id = ?", orgID).
		Order("events.event_date, events.event_time").
		Find(&events).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched successfully!", fiber.Map{
		"events": events,
		"total":  len(events),
	})
}

func CreateEvent(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedEvent").(*communityValidator.EventRequest)

	event := models.Event{
		Title:           reqData.Title,
		Description:     reqData.Description,
		OrganizerID:     orgID,
		EventDate:       reqData.EventDate,
		EventTime:       reqData.EventTime,
		Location:        reqData.Location,
		MaxParticipants: reqData.MaxParticipants,
	}

	if err := database.Database.Db.Create(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Event created successfully!", event)
}

func UpdateEvent(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	eventID := c.Locals("eventID").(uint)
	reqData := c.Locals("validatedEvent").(*communityValidator.EventRequest)

	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ? AND organizer_id = ?", eventID, orgID).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found or access denied!", nil)
	}

	updates := map[string]interface{}{
		"title":            reqData.Title,
		"description":      reqData.Description,
		"event_date":       reqData.EventDate,
		"event_time":       reqData.EventTime,
		"location":         reqData.Location,
		"max_participants": reqData.MaxParticipants,
	}
	if reqData.Status != "" {
		updates["status"] = reqData.Status
	}
	if err := db.Model(&event).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event updated successfully!", event)
}

// DeleteEvent removes an owned event and its participant rows first
func DeleteEvent(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	eventID := c.Locals("eventID").(uint)
	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ? AND organizer_id = ?", eventID, orgID).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found or access denied!", nil)
	}

	tx := db.Begin()
	if err := tx.Where("event_id = ?", event.ID).Delete(&models.EventParticipant{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete event!", nil)
	}
	if err := tx.Delete(&event).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete event!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event deleted successfully!", nil)
}

// RegisterForEvent registers the calling user for an event. Same
// insert-if-absent shape as course enrollment: the unique index decides.
func RegisterForEvent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	eventID := c.Locals("eventID").(uint)
	db := database.Database.Db

	var event models.Event
	if err := db.First(&event, eventID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	participant := models.EventParticipant{
		EventID: event.ID,
		UserID:  userID,
	}
	if err := db.Create(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already registered for this event!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register for event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registered for event successfully!", participant)
}
