package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/prabeshkharel/earnkart/app/helpers"
	"github.com/prabeshkharel/earnkart/app/middlewares"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type AuthHandler struct {
	render *render.Render
	store  sessions.Store
	db     *gorm.DB
}

func NewAuthHandler(r *render.Render, store sessions.Store, db *gorm.DB) *AuthHandler {
	return &AuthHandler{render: r, store: store, db: db}
}

type registerForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, http.StatusOK, "site/auth/login", map[string]interface{}{
		"Title": "Login",
	})
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := r.FormValue("email")
	password := r.FormValue("password")

	var user models.User
	err := h.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Invalid email or password."), http.StatusSeeOther)
		return
	}

	if !helpers.CheckPasswordHash(password, user.Password) {
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Invalid email or password."), http.StatusSeeOther)
		return
	}

	if err := middlewares.SetAuthenticatedUser(h.store, w, r, user.ID); err != nil {
		log.Printf("ERROR: AuthHandler.LoginPost: save session: %v", err)
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Failed to sign in."), http.StatusSeeOther)
		return
	}

	if user.Role == models.RoleAdmin {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, http.StatusOK, "site/auth/register", map[string]interface{}{
		"Title": "Register",
	})
}

func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form := registerForm{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := helpers.Validate.Struct(form); err != nil {
		http.Redirect(w, r, "/register?status=error&message="+url.QueryEscape("Please fill in all fields correctly."), http.StatusSeeOther)
		return
	}

	var existing int64
	h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", form.Email).Count(&existing)
	if existing > 0 {
		http.Redirect(w, r, "/register?status=error&message="+url.QueryEscape("Email is already registered."), http.StatusSeeOther)
		return
	}

	hashed, err := helpers.HashPassword(form.Password)
	if err != nil {
		log.Printf("ERROR: AuthHandler.RegisterPost: hash password: %v", err)
		http.Redirect(w, r, "/register?status=error&message="+url.QueryEscape("Failed to register."), http.StatusSeeOther)
		return
	}

	user := models.User{
		ID:       uuid.New().String(),
		Name:     form.Name,
		Email:    form.Email,
		Password: hashed,
		Role:     models.RoleCustomer,
	}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Printf("ERROR: AuthHandler.RegisterPost: create user: %v", err)
		http.Redirect(w, r, "/register?status=error&message="+url.QueryEscape("Failed to register."), http.StatusSeeOther)
		return
	}

	if err := middlewares.SetAuthenticatedUser(h.store, w, r, user.ID); err != nil {
		log.Printf("WARNING: AuthHandler.RegisterPost: save session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := middlewares.ClearAuthenticatedUser(h.store, w, r); err != nil {
		log.Printf("WARNING: AuthHandler.Logout: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
