package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-reservation/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

// Migrate runs AutoMigrate in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
	)
}

func seedUser(db *gorm.DB, name, email string, role models.Role, passwordHash string) {
	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("warning: failed to seed user %s: %v", email, err)
	} else {
		log.Printf("Seeded %s account %s", role, email)
	}
}

// SeedDatabase is idempotent: it creates the default accounts and a starter
// room inventory only when missing.
func SeedDatabase(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("SEED_PASSWORD", "password")), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: failed to hash seed password: %v", err)
		return
	}

	seedUser(db, "Super Admin", "superadmin@hotel.com", models.RoleSuperadmin, string(hash))
	seedUser(db, "Hotel Admin", "admin@hotel.com", models.RoleAdmin, string(hash))
	seedUser(db, "Hotel Staff", "staff@hotel.com", models.RoleStaff, string(hash))
	seedUser(db, "Test Guest", "guest@hotel.com", models.RoleGuest, string(hash))

	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount > 0 {
		return
	}

	rooms := []models.Room{
		{Number: "101", Type: models.RoomTypeStandard, Description: "Standard queen room", Capacity: 2, PricePerNight: 89.00, Status: models.RoomStatusAvailable},
		{Number: "102", Type: models.RoomTypeStandard, Description: "Standard twin room", Capacity: 2, PricePerNight: 89.00, Status: models.RoomStatusAvailable},
		{Number: "103", Type: models.RoomTypeStandard, Description: "Standard queen room", Capacity: 2, PricePerNight: 95.00, Status: models.RoomStatusMaintenance},
		{Number: "201", Type: models.RoomTypeDeluxe, Description: "Deluxe king room with city view", Capacity: 3, PricePerNight: 149.00, Status: models.RoomStatusAvailable},
		{Number: "202", Type: models.RoomTypeDeluxe, Description: "Deluxe double room", Capacity: 4, PricePerNight: 159.00, Status: models.RoomStatusAvailable},
		{Number: "301", Type: models.RoomTypeSuite, Description: "One-bedroom suite", Capacity: 4, PricePerNight: 249.00, Status: models.RoomStatusAvailable},
		{Number: "302", Type: models.RoomTypeSuite, Description: "Two-bedroom suite", Capacity: 6, PricePerNight: 329.00, Status: models.RoomStatusOutOfOrder},
		{Number: "401", Type: models.RoomTypeExecutive, Description: "Executive suite with lounge access", Capacity: 4, PricePerNight: 399.00, Status: models.RoomStatusAvailable},
		{Number: "501", Type: models.RoomTypePresidential, Description: "Presidential suite, full floor", Capacity: 8, PricePerNight: 999.00, Status: models.RoomStatusAvailable},
	}
	if err := db.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
	} else {
		log.Println("Rooms seeded")
	}
}
