package pkg

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose 令牌用途，写入 sub 字段，不同用途的令牌不能混用
type Purpose string

const (
	PurposeConfirm     Purpose = "confirm"
	PurposeReset       Purpose = "reset"
	PurposeChangeEmail Purpose = "change_email"
	PurposeAuth        Purpose = "auth"
)

// DefaultTokenTTL 确认、重置密码、修改邮箱令牌的默认有效期
const DefaultTokenTTL = time.Hour

// MinSecretLength 签名密钥最短长度
const MinSecretLength = 16

var (
	// ErrTokenInvalid 格式错误、签名不符、过期、缺字段统一返回这一个错误
	ErrTokenInvalid  = errors.New("token invalid")
	ErrMissingSecret = errors.New("secret key is required")
	ErrTokenPayload  = errors.New("payload does not match purpose")
)

// Claims 各用途的载荷字段互斥，只有与用途对应的字段会被填充
type Claims struct {
	Confirm     *uint64 `json:"confirm,omitempty"`
	Reset       *uint64 `json:"reset,omitempty"`
	ChangeEmail *uint64 `json:"change_email,omitempty"`
	NewEmail    string  `json:"new_email,omitempty"`
	UserID      *uint64 `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// SubjectFor 取出该用途下的用户 id
func (c *Claims) SubjectFor(p Purpose) (uint64, bool) {
	var id *uint64
	switch p {
	case PurposeConfirm:
		id = c.Confirm
	case PurposeReset:
		id = c.Reset
	case PurposeChangeEmail:
		if c.NewEmail == "" {
			return 0, false
		}
		id = c.ChangeEmail
	case PurposeAuth:
		id = c.UserID
	}
	if id == nil {
		return 0, false
	}
	return *id, true
}

// TokenService 无状态 HS256 令牌，签发与校验都不落库
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenService{secret: []byte(secret), now: time.Now}, nil
}

// WithClock 替换时钟，测试里模拟时间漂移
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue 签发令牌，ttl<=0 时使用默认有效期
func (s *TokenService) Issue(p Purpose, claims Claims, ttl time.Duration) (string, error) {
	if _, ok := claims.SubjectFor(p); !ok {
		return "", ErrTokenPayload
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   string(p),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) IssueConfirmation(userID uint64, ttl time.Duration) (string, error) {
	return s.Issue(PurposeConfirm, Claims{Confirm: &userID}, ttl)
}

func (s *TokenService) IssueReset(userID uint64, ttl time.Duration) (string, error) {
	return s.Issue(PurposeReset, Claims{Reset: &userID}, ttl)
}

func (s *TokenService) IssueEmailChange(userID uint64, newEmail string, ttl time.Duration) (string, error) {
	return s.Issue(PurposeChangeEmail, Claims{ChangeEmail: &userID, NewEmail: newEmail}, ttl)
}

// IssueAuth API 令牌的有效期由调用方决定
func (s *TokenService) IssueAuth(userID uint64, ttl time.Duration) (string, error) {
	return s.Issue(PurposeAuth, Claims{UserID: &userID}, ttl)
}

// Verify 校验签名、过期时间和用途，任何失败都只返回 ErrTokenInvalid
func (s *TokenService) Verify(tokenStr string, p Purpose) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(string(p)),
	)
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	if _, ok = claims.SubjectFor(p); !ok {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
