package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"strings"
	"time"

	"Gin_postgres_redis_rent_marketplace/app"
	"Gin_postgres_redis_rent_marketplace/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct{ *Srv }

func GetAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if len(in.Password) < 8 {
		c.JSON(http.StatusBadRequest, app.H{"error": "password must be at least 8 characters"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := ac.Repo.FindUserByEmail(c.Request.Context(), email)
	if err == nil {
		if existing.Verified {
			c.JSON(http.StatusBadRequest, app.H{"error": "email already exists"})
			return
		}
		// 未验证的老账号：重发验证链接，不再新建一行
		ac.sendVerification(existing.ID, email)
		c.JSON(http.StatusOK, app.H{"ok": true, "message": "verification email resent"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := ac.Repo.CreateUser(c.Request.Context(), u); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	ac.sendVerification(u.ID, email)
	c.JSON(http.StatusCreated, app.H{"ok": true, "message": "verification email sent"})
}

// GET /api/auth/verify/:token
func (ac *AuthController) Verify(c *gin.Context) {
	userID, err := ac.Verifier.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid or expired link"})
		return
	}
	if err := ac.Repo.MarkVerified(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u, err := ac.Repo.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid email or password"})
		return
	}
	if !u.Verified {
		c.JSON(http.StatusForbidden, app.H{"error": "please verify your email first"})
		return
	}

	if u.IsBanned {
		// 到期自动解封，否则带原因拒绝
		if u.BanExpired(time.Now()) {
			if err := ac.Repo.ClearBan(c.Request.Context(), u.ID); err != nil {
				c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
				return
			}
		} else {
			c.JSON(http.StatusForbidden, app.H{"error": u.BanMessage()})
			return
		}
	}

	if err := ac.issueSession(c.Request.Context(), c.Writer, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"ok":         true,
		"userID":     u.ID,
		"firstLogin": u.FirstLogin, // 首次登录先去补资料
	})
}

// POST /api/auth/profile
func (ac *AuthController) ProfileSetup(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		FullName string `json:"fullName" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
		Address  string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := ac.Repo.UpdateProfile(c.Request.Context(), uid, in.FullName, in.Phone, in.Address); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(ac.WebOrigin, "https://"),
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/auth/whoami
func (ac *AuthController) Whoami(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	u, err := ac.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// -------------------- 验证邮件 --------------------

// 失败只打日志，不影响注册流程
func (ac *AuthController) sendVerification(userID, email string) {
	tok, err := ac.Verifier.Issue(userID, email, time.Now())
	if err != nil {
		log.Printf("[verify email] issue token failed: %v", err)
		return
	}
	link := strings.TrimRight(ac.WebOrigin, "/") + "/verify?token=" + tok
	if err := ac.sendVerifyMail(email, link); err != nil {
		log.Printf("[verify email] send failed: %v", err)
	}
}

type smtpConf struct {
	Host     string // SMTP_HOST, e.g. smtp.gmail.com
	Port     string // SMTP_PORT, e.g. 587
	Username string // SMTP_USERNAME
	Password string // SMTP_PASSWORD
	From     string // SMTP_FROM（为空时回退 Username）
	AppName  string // APP_NAME
}

func loadSMTP() smtpConf {
	get := func(k, d string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return d
	}
	return smtpConf{
		Host:     get("SMTP_HOST", ""),
		Port:     get("SMTP_PORT", "587"),
		Username: get("SMTP_USERNAME", ""),
		Password: get("SMTP_PASSWORD", ""),
		From:     get("SMTP_FROM", ""),
		AppName:  get("APP_NAME", "Borrowed Marketplace"),
	}
}

func (ac *AuthController) sendVerifyMail(toEmail, link string) error {
	conf := loadSMTP()

	// 未配置 SMTP → 开发模式：打印即可，不报错
	if conf.Host == "" || (conf.Username == "" && conf.From == "") {
		log.Printf("[DEV] Verify link for %s: %s", toEmail, link)
		return nil
	}

	fromAddr := conf.From
	if fromAddr == "" {
		fromAddr = conf.Username
	}

	subject := fmt.Sprintf("%s — verify your email", conf.AppName)
	htmlBody := fmt.Sprintf(`
<div style="font-family:Arial,sans-serif; font-size:14px; color:#222">
  <p>Hello,</p>
  <p>Welcome to <b>%s</b>. Click the button below to verify your email address:</p>
  <p>
    <a href="%s" style="display:inline-block; padding:10px 16px; background:#2563EB; color:#fff; text-decoration:none; border-radius:6px;">
      Verify Email
    </a>
  </p>
  <p>Or open this link directly:</p>
  <p><a href="%s">%s</a></p>
  <p>This link will expire in 24 hours.</p>
  <hr/>
  <p style="color:#666">If you did not sign up, you can safely ignore this email.</p>
</div>
`, conf.AppName, link, link, link)

	msg := buildMIMEWithFromName(conf.AppName, fromAddr, toEmail, subject, htmlBody)

	auth := smtp.PlainAuth("", conf.Username, conf.Password, conf.Host)
	addr := conf.Host + ":" + conf.Port
	return smtp.SendMail(addr, auth, fromAddr, []string{toEmail}, []byte(msg))
}

func buildMIMEWithFromName(fromName, fromAddr, to, subject, html string) string {
	headers := []string{
		fmt.Sprintf("From: %s <%s>", fromName, fromAddr),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + html
}
