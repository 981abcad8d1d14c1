package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rentnest/internal/database"
	"rentnest/internal/domain"
)

func main() {
	db, err := database.Connect("rentnest.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Property{},
		&domain.PropertyUnlock{},
		&domain.BookingRequest{},
		&domain.Payment{},
		&domain.Rental{},
		&domain.CreditPackage{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM rentals")
	db.Exec("DELETE FROM booking_requests")
	db.Exec("DELETE FROM property_unlocks")
	db.Exec("DELETE FROM credit_packages")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@rentnest.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@rentnest.local / admin123")

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owners := []domain.User{}
	for i, email := range []string{"rahim@rentnest.local", "karim@rentnest.local"} {
		owner := domain.User{
			Email:        email,
			PasswordHash: string(ownerHash),
			Role:         domain.RoleOwner,
			Name:         fmt.Sprintf("Owner %d", i+1),
			Phone:        fmt.Sprintf("+88017000000%02d", i+1),
			Address:      fmt.Sprintf("%d Green Road", i+10),
			City:         "Dhaka",
			NIDNumber:    fmt.Sprintf("19789876543%02d", i+1),
			Credits:      20,
		}
		db.Create(&owner)
		owners = append(owners, owner)
	}
	log.Println("Owners created: rahim@/karim@rentnest.local / owner123")

	tenantHash, _ := bcrypt.GenerateFromPassword([]byte("tenant123"), bcrypt.DefaultCost)
	tenants := []domain.User{}
	for i, email := range []string{"tania@rentnest.local", "sumi@rentnest.local", "arif@rentnest.local"} {
		tenant := domain.User{
			Email:        email,
			PasswordHash: string(tenantHash),
			Role:         domain.RoleTenant,
			Name:         fmt.Sprintf("Tenant %d", i+1),
			Phone:        fmt.Sprintf("+88018000000%02d", i+1),
			City:         "Dhaka",
			NIDNumber:    fmt.Sprintf("19901234567%02d", i+1),
			Credits:      10,
		}
		db.Create(&tenant)
		tenants = append(tenants, tenant)
	}
	log.Println("Tenants created: tania@/sumi@/arif@rentnest.local / tenant123")

	log.Println("Creating properties...")

	availableFrom := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	titles := []string{"Lakeview Flat", "Banani Studio", "Uttara Family Home", "Old Town Loft"}
	cities := []string{"Dhaka", "Dhaka", "Dhaka", "Chattogram"}
	prices := []float64{20000, 15000, 35000, 12000}
	statuses := []domain.PropertyStatus{
		domain.PropertyAvailable,
		domain.PropertyAvailable,
		domain.PropertyPending,
		domain.PropertyAvailable,
	}

	for i := range titles {
		property := domain.Property{
			OwnerID:       owners[i%len(owners)].ID,
			Title:         titles[i],
			Description:   "Seeded demo listing",
			Address:       fmt.Sprintf("%d Demo Street", i+1),
			City:          cities[i],
			Price:         prices[i],
			Status:        statuses[i],
			AvailableFrom: availableFrom,
		}
		db.Create(&property)
	}

	log.Println("Creating a pending booking request...")
	var firstProperty domain.Property
	db.Where("status = ?", domain.PropertyAvailable).First(&firstProperty)
	db.Create(&domain.BookingRequest{
		PropertyID: firstProperty.ID,
		TenantID:   tenants[0].ID,
		OwnerID:    firstProperty.OwnerID,
		Status:     domain.RequestPending,
	})

	log.Println("Seed finished.")
}
