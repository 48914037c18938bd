package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	config "github.com/sarthakkanade/campus-events-go/config"
	models "github.com/sarthakkanade/campus-events-go/models"
	store "github.com/sarthakkanade/campus-events-go/store"
)

func signToken(cfg *config.Config, u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   u.ID.Hex(),
		"name": u.Name,
		"role": string(u.Role),
		"exp":  time.Now().Add(100 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ---------------- REGISTER ----------------
func Register(cfg *config.Config, s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name      string `json:"name" binding:"required"`
			Email     string `json:"email" binding:"required,email"`
			Password  string `json:"password" binding:"required,min=6"`
			Role      string `json:"role"`
			StudentID string `json:"studentID"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		role := models.Role(input.Role)
		if role == "" {
			role = models.RoleStudent
		}
		if role != models.RoleStudent && role != models.RoleOrganizer && role != models.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}
		if role == models.RoleStudent && input.StudentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "studentID is required for students"})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		if _, err := s.Users.ByEmail(ctx, input.Email); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		user := models.User{
			Name:      input.Name,
			Email:     input.Email,
			Password:  string(hashed),
			Role:      role,
			StudentID: input.StudentID,
		}
		if err := s.Users.Insert(ctx, &user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		token, err := signToken(cfg, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token})
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config, s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		user, err := s.Users.ByEmail(ctx, input.Email)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := signToken(cfg, user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// ---------------- ME ----------------
func Me(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		user, err := s.Users.ByID(ctx, actor.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// ---------------- PROFILE ----------------
func UpdateProfile(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			return
		}

		var input struct {
			Name      *string   `json:"name"`
			Bio       *string   `json:"bio"`
			Avatar    *string   `json:"avatar"`
			Interests *[]string `json:"interests"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		user, err := s.Users.UpdateProfile(ctx, actor.ID, func(u *models.User) {
			if input.Name != nil {
				u.Name = *input.Name
			}
			if input.Bio != nil {
				u.Bio = *input.Bio
			}
			if input.Avatar != nil {
				u.Avatar = *input.Avatar
			}
			if input.Interests != nil {
				u.Interests = *input.Interests
			}
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
