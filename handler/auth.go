package handler

import (
	"net/http"
	"strings"
	"time"

	"avm-navigator/model"
	"avm-navigator/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims JWT 载荷
type Claims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// PairRequest 渲染端配对请求
type PairRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PairResponse 配对响应
type PairResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   string    `json:"message"`
}

// Auth 渲染端配对: 维护人员登录后为渲染端签发令牌
type Auth struct {
	secret   []byte
	ttl      time.Duration
	operator model.Operator
	now      func() time.Time
}

// NewAuth operator.Password 为 bcrypt 哈希
func NewAuth(secret string, ttl time.Duration, operator model.Operator) *Auth {
	return &Auth{
		secret:   []byte(secret),
		ttl:      ttl,
		operator: operator,
		now:      time.Now,
	}
}

// Pair 校验维护人员密码并签发令牌
func (a *Auth) Pair(c *gin.Context) {
	var req PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}

	if req.Username != a.operator.Username || !utils.CheckPassword(a.operator.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户名或密码错误"})
		return
	}

	token, expires, err := a.Issue(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 Token 失败"})
		return
	}

	c.JSON(http.StatusOK, PairResponse{
		Token:     token,
		ExpiresAt: expires,
		Message:   "配对成功",
	})
}

// Issue 签发令牌
func (a *Auth) Issue(operator string) (string, time.Time, error) {
	now := a.now()
	expires := now.Add(a.ttl)
	claims := &Claims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "avm-navigator",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	return signed, expires, err
}

// Verify 解析并校验令牌
func (a *Auth) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Middleware JWT 认证中间件
func (a *Auth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未提供 Token"})
			c.Abort()
			return
		}

		// 移除 "Bearer " 前缀
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims, err := a.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的 Token"})
			c.Abort()
			return
		}

		c.Set("operator", claims.Operator)
		c.Next()
	}
}
