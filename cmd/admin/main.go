// Package main provides admin management utilities for SkillSwap.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <email>       - Promote user to admin")
		fmt.Println("  go run ./cmd/admin demote <email>        - Demote user from admin")
		fmt.Println("  go run ./cmd/admin ban <email>           - Ban a user")
		fmt.Println("  go run ./cmd/admin unban <email>         - Reactivate a user")
		fmt.Println("  go run ./cmd/admin list-admins           - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		setRole(db, requireEmailArg(), models.RoleAdmin)
	case "demote":
		setRole(db, requireEmailArg(), models.RoleUser)
	case "ban":
		setStatus(db, requireEmailArg(), models.StatusBanned)
	case "unban":
		setStatus(db, requireEmailArg(), models.StatusActive)
	case "list-admins":
		listAdmins(db)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func requireEmailArg() string {
	if len(os.Args) < 3 {
		fmt.Printf("Usage: go run ./cmd/admin %s <email>\n", os.Args[1])
		os.Exit(1)
	}
	return os.Args[2]
}

func findUser(db *gorm.DB, email string) *models.User {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with email %s not found\n", email)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}
	return &user
}

func setRole(db *gorm.DB, email string, role models.UserRole) {
	user := findUser(db, email)
	if user.Role == role {
		fmt.Printf("User %s (ID: %d) already has role %s\n", user.Email, user.ID, role)
		return
	}

	user.Role = role
	if err := db.Save(user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}
	fmt.Printf("User %s (ID: %d) is now %s\n", user.Email, user.ID, role)
}

func setStatus(db *gorm.DB, email string, status models.UserStatus) {
	user := findUser(db, email)
	if user.Status == status {
		fmt.Printf("User %s (ID: %d) is already %s\n", user.Email, user.ID, status)
		return
	}

	user.Status = status
	if err := db.Save(user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}
	fmt.Printf("User %s (ID: %d) is now %s\n", user.Email, user.ID, status)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		log.Fatalf("Database error: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found")
		return
	}

	fmt.Println("Admins:")
	for _, admin := range admins {
		fmt.Printf("  %d  %s  %s  (%s)\n", admin.ID, admin.Name, admin.Email, admin.Status)
	}
}
