// CLI tool to create a staff account with a bcrypt-hashed password and a
// fresh bearer token.
// Usage: go run ./cmd/create-user (from the repository root)
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var roles = []string{"ADMIN", "STAFF", "DOCTOR"}

// normalizeRole upper-cases r and checks it against roles. Blank means DOCTOR.
func normalizeRole(r string) (string, bool) {
	r = strings.ToUpper(strings.TrimSpace(r))
	if r == "" {
		return "DOCTOR", true
	}
	for _, known := range roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	s, _ := reader.ReadString('\n')
	return strings.TrimSpace(s)
}

func main() {
	_ = godotenv.Load()

	conn, err := pgx.Connect(context.Background(), os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	reader := bufio.NewReader(os.Stdin)
	username := prompt(reader, "Username: ")
	fullName := prompt(reader, "Full name: ")
	role, ok := normalizeRole(prompt(reader, "Role (ADMIN/STAFF/DOCTOR) [DOCTOR]: "))
	if !ok {
		fmt.Fprintf(os.Stderr, "Role must be one of %s\n", strings.Join(roles, ", "))
		os.Exit(1)
	}
	password := prompt(reader, "Password: ")
	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "Username and password are required")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	authToken := uuid.New().String()

	var userID uuid.UUID
	err = conn.QueryRow(context.Background(),
		`INSERT INTO users (username, full_name, role, password, auth_token)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		username, fullName, role, string(hash), authToken,
	).Scan(&userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %s\n", userID)
	fmt.Printf("  Username:   %s\n", username)
	fmt.Printf("  Role:       %s\n", role)
	fmt.Printf("  Auth Token: %s\n", authToken)
}
