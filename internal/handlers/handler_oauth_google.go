package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler handles the Google OAuth sign-in flows.
type googleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
	authHandler  *AuthHandler
}

func newGoogleOAuthHandler(os portssvc.GoogleOAuthHandlerSvcFacade, ah *AuthHandler) *googleOAuthHandler {
	return &googleOAuthHandler{oauthService: os, authHandler: ah}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes under the auth group.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, os portssvc.GoogleOAuthHandlerSvcFacade, ah *AuthHandler) {
	h := newGoogleOAuthHandler(os, ah)

	google := rg.Group("/google")
	{
		google.GET("/login-url", h.getLoginURL)
		google.POST("/exchange-code", h.exchangeCode)
		google.POST("/token-signin", h.tokenSignIn)
	}
}

// getLoginURL godoc
// @Summary Get the Google login URL
// @Description Returns the Google consent URL for the frontend to redirect to,
// @Description together with the CSRF state string.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.GoogleLoginURLResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login-url [get]
func (h *googleOAuthHandler) getLoginURL(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google sign-in"})
		return
	}

	url := h.oauthService.GetGoogleLoginURL(c.Request.Context(), state)
	c.JSON(http.StatusOK, dto.GoogleLoginURLResponse{URL: url, State: state})
}

// exchangeCode godoc
// @Summary Sign in with a Google authorization code
// @Description Exchanges the authorization code for Google tokens, resolves the
// @Description user by email and returns the application's token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), req.Code)
	if err != nil {
		logger.Warn("Failed to exchange OAuth code", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid authorization code"})
		return
	}

	info, err := h.oauthService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		logger.Error("Failed to fetch Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch user info"})
		return
	}
	if !info.VerifiedEmail {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google account email is not verified"})
		return
	}

	h.signInWithIdentity(c, info.Email, info.Name)
}

// tokenSignIn godoc
// @Summary Sign in with a Google ID token
// @Description Validates a Google ID token from a client-side flow, resolves the
// @Description user by email and returns the application's token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.GoogleTokenSignInRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/token-signin [post]
func (h *googleOAuthHandler) tokenSignIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleTokenSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payload, err := h.oauthService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		logger.Warn("Failed to validate Google ID token", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if verified, _ := payload.Claims["email_verified"].(bool); !verified || email == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google account email is not verified"})
		return
	}

	h.signInWithIdentity(c, email, name)
}

// signInWithIdentity resolves or creates the user for a verified external
// identity and responds with the application's token pair.
func (h *googleOAuthHandler) signInWithIdentity(c *gin.Context, email, name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.authHandler.userService.FindOrCreateOAuthUser(c.Request.Context(), email, name)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to sign in")
		return
	}

	accessToken, err := h.authHandler.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue tokens after OAuth sign-in", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("User signed in via Google", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)})
}
