package main

import (
	"flag"
	"fmt"
	"os"

	"edupro-lms/app/config"
	"edupro-lms/app/database"
	"edupro-lms/app/models"
	"edupro-lms/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first", "", "first name")
	lastName := flag.String("last", "", "last name")
	role := flag.String("role", "bursar", "role: admin, bursar or viewer")
	flag.Parse()

	if *email == "" || *password == "" || *firstName == "" {
		flag.Usage()
		os.Exit(2)
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	user := &models.User{
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      *role,
		IsActive:  true,
	}

	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s %s (%s, %s)\n", user.FirstName, user.LastName, user.Email, user.Role)
}
