package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"musicstudio/internal/config"
	"musicstudio/internal/database"
	"musicstudio/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = "musicstudio.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payment_events")
	db.Exec("DELETE FROM check_ins")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM cancellation_policies")
	db.Exec("DELETE FROM instructors")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@musicstudio.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Studio Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@musicstudio.local / admin123")

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	staff := domain.User{
		Email:        "frontdesk@musicstudio.local",
		PasswordHash: string(staffHash),
		Role:         domain.RoleStaff,
		Name:         "Front Desk",
	}
	db.Create(&staff)

	clientEmails := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	for i, email := range clientEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		client := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
			Name:         fmt.Sprintf("Client %d", i+1),
		}
		db.Create(&client)
	}

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	rooms := []domain.Room{
		{Name: "Lesson Room A", ServiceType: domain.ServiceMusicLesson, HourlyRate: 40},
		{Name: "Recording Studio", ServiceType: domain.ServiceRecording, HourlyRate: 90},
		{Name: "Rehearsal Hall", ServiceType: domain.ServiceRehearsal, HourlyRate: 55},
		{Name: "Dance Floor", ServiceType: domain.ServiceDance, HourlyRate: 50},
		{Name: "Arrangement Suite", ServiceType: domain.ServiceArrangement, HourlyRate: 70},
		{Name: "Voiceover Booth", ServiceType: domain.ServiceVoiceover, HourlyRate: 60},
	}
	for i := range rooms {
		db.Create(&rooms[i])
	}

	// ================== INSTRUCTORS ==================
	log.Println("Creating instructors...")

	instructors := []domain.Instructor{
		{Name: "Marina Petrova", Specialty: domain.ServiceMusicLesson, IsActive: true},
		{Name: "Daniel Okafor", Specialty: domain.ServiceMusicLesson, IsActive: true},
		{Name: "Sofia Reyes", Specialty: domain.ServiceDance, IsActive: true},
		{Name: "Jakub Novak", Specialty: domain.ServiceRecording, IsActive: true},
		{Name: "Lena Hoffmann", Specialty: domain.ServiceVoiceover, IsActive: false},
	}
	for i := range instructors {
		db.Create(&instructors[i])
	}

	// ================== POLICIES ==================
	log.Println("Creating policies...")

	policies := []domain.CancellationPolicy{
		{PolicyType: domain.PolicyCancellation, HoursBeforeBooking: 48, Percentage: 100, Description: "Full refund with 48h notice", IsActive: true},
		{PolicyType: domain.PolicyCancellation, HoursBeforeBooking: 24, Percentage: 50, Description: "Half refund with 24h notice", IsActive: true},
		{PolicyType: domain.PolicyCancellation, HoursBeforeBooking: 0, Percentage: 0, Description: "No refund under 24h", IsActive: true},
		{PolicyType: domain.PolicyRescheduling, HoursBeforeBooking: 48, Percentage: 0, Description: "Free rescheduling with 48h notice", IsActive: true},
		{PolicyType: domain.PolicyRescheduling, HoursBeforeBooking: 24, Percentage: 10, Description: "10% fee with 24h notice", IsActive: true},
		{PolicyType: domain.PolicyRescheduling, HoursBeforeBooking: 8, Percentage: 25, Description: "25% fee with 8h notice", IsActive: true},
	}
	for i := range policies {
		db.Create(&policies[i])
	}

	log.Println("Seed complete.")
}
