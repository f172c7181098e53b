package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"komodohub/config"
	"komodohub/models"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a database connection. PostgreSQL is used when
// DB_HOST is configured; otherwise a local sqlite file is opened, which
// mirrors the single-file deployment the platform started with.
func ConnectDb() {
	var (
		db  *gorm.DB
		err error
	)

	// TranslateError is required: enrollment and group assignment rely on
	// gorm.ErrDuplicatedKey to detect a lost uniqueness race.
	gormConfig := &gorm.Config{TranslateError: true}

	if config.AppConfig.DBHost != "" {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			config.AppConfig.DBHost,
			config.AppConfig.DBUser,
			config.AppConfig.DBPassword,
			config.AppConfig.DBName,
			config.AppConfig.DBPort,
		)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	} else {
		db, err = gorm.Open(sqlite.Open(config.AppConfig.SQLitePath), gormConfig)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	RunMigrations(db)

	if err := SeedUsers(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Course{},
		&models.CourseContent{},
		&models.Enrollment{},
		&models.Event{},
		&models.EventParticipant{},
		&models.Member{},
		&models.MemberGroup{},
		&models.MemberGroupRelation{},
		&models.SystemSetting{},
		&models.SecurityLog{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// SeedUsers inserts one account per role when the users table is empty.
func SeedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(config.AppConfig.DefaultStudentPassword), config.AppConfig.SaltRound)
	if err != nil {
		return err
	}
	password := string(hash)

	seed := []models.User{
		{
			Username: "teacher@komodohub.edu", Password: password,
			Role: models.RoleTeacher, FullName: "Mr. Smith",
			TeacherCode: "T001", Department: "Biological Sciences Department",
		},
		{
			Username: "student1@komodohub.edu", Password: password,
			Role: models.RoleStudent, FullName: "John Davis",
			StudentCode: "S001", Grade: "Grade 3",
		},
		{
			Username: "student2@komodohub.edu", Password: password,
			Role: models.RoleStudent, FullName: "Sarah Wilson",
			StudentCode: "S002", Grade: "Grade 3",
		},
		{
			Username: "admin@komodohub.edu", Password: password,
			Role: models.RolePlatformAdmin, FullName: "Platform Administrator",
		},
		{
			Username: "org@komodohub.org", Password: password,
			Role: models.RoleCommunityOrg, FullName: "Green Conservation Organization",
			OrgName: "Green Conservation Organization", ContactPerson: "Director Wang",
		},
	}

	if err := db.Create(&seed).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d default users", len(seed))
	return nil
}
