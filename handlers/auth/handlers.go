package auth

import (
	"database/sql"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/db"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/response"
	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
)

const minPasswordLength = 8

// SignupHandler handles user registration
// Used by: /api/auth/signup
// Response: LoginResponse (role is empty until the user picks one)
func SignupHandler(conn *sql.DB, tokens *Tokens, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		if err := response.Decode(r, &creds); err != nil {
			response.Error(w, r, logger, err)
			return
		}
		creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
		if _, err := mail.ParseAddress(creds.Email); err != nil || len(creds.Password) < minPasswordLength {
			response.Error(w, r, logger, appErrors.ErrInvalidSignup)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}

		var userID int
		var createdAt time.Time
		err = conn.QueryRowContext(r.Context(), InsertUserQuery, creds.Email, string(hashedPassword)).Scan(&userID, &createdAt)
		if db.IsUniqueViolation(err) {
			response.Error(w, r, logger, appErrors.ErrEmailTaken)
			return
		}
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}

		token, err := tokens.GenerateToken(userID)
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}

		logger.Info("user signed up", zap.Int("user_id", userID))
		response.JSON(w, http.StatusCreated, LoginResponse{ID: userID, Email: creds.Email, Token: token})
	}
}

// LoginHandler handles user authentication
// Used by: /api/auth/login
// Response: LoginResponse
func LoginHandler(conn *sql.DB, tokens *Tokens, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		if err := response.Decode(r, &creds); err != nil {
			response.Error(w, r, logger, err)
			return
		}

		var user User
		var hashedPassword string
		err := conn.QueryRowContext(r.Context(), SelectLoginQuery, strings.ToLower(strings.TrimSpace(creds.Email))).
			Scan(&user.ID, &user.Email, &hashedPassword, &user.Role)
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(w, r, logger, appErrors.ErrInvalidCredentials)
			return
		}
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(creds.Password)); err != nil {
			response.Error(w, r, logger, appErrors.ErrInvalidCredentials)
			return
		}

		token, err := tokens.GenerateToken(user.ID)
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}

		response.JSON(w, http.StatusOK, LoginResponse{ID: user.ID, Email: user.Email, Token: token, Role: user.Role})
	}
}
