package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clinichub/clinic-backend/internal/config"
	"github.com/clinichub/clinic-backend/internal/crypto"
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/identity"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrValidation         = errors.New("all fields including KVKK consent are required")
	ErrConsentRequired    = errors.New("KVKK consent is required to proceed")
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncompleteIdentity = errors.New("external claim missing email and subject id")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	cipher *crypto.FieldCipher
}

func NewAuthService(db *gorm.DB, cfg *config.Config, cipher *crypto.FieldCipher) *AuthService {
	return &AuthService{db: db, cfg: cfg, cipher: cipher}
}

// Register creates a local-password account. PII is encrypted before it is
// stored; the uniqueness check runs against the deterministic ciphertext of
// the normalized email.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return nil, ErrValidation
	}
	if !req.KVKKConsent {
		return nil, ErrConsentRequired
	}
	if len(req.Password) < 8 {
		return nil, ErrWeakPassword
	}

	email := NormalizeEmail(req.Email)
	encryptedEmail := s.cipher.Encrypt(email)

	var existing models.User
	if err := s.db.Where("email = ?", encryptedEmail).First(&existing).Error; err == nil {
		return nil, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := models.User{
		ID:             uuid.New(),
		FullName:       req.Name,
		Email:          encryptedEmail,
		Phone:          s.cipher.Encrypt(req.Phone),
		Address:        s.cipher.Encrypt(req.Address),
		PasswordHash:   string(hash),
		Role:           "patient",
		AuthProvider:   "password",
		KVKKConsent:    true,
		KVKKAcceptedAt: &now,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		User:    s.toProfile(&user),
	}, nil
}

// Login verifies a local password. Unknown email and wrong password return
// the same error so the response does not reveal which part was wrong.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrValidation
	}

	encryptedEmail := s.cipher.Encrypt(NormalizeEmail(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", encryptedEmail).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    s.toProfile(&user),
	}, nil
}

// SyncExternalUser maps a verified external identity claim to exactly one
// local account, creating it on first contact.
//
// Order of operations matters: the email ciphertext lookup comes first, then
// the subject-id fallback (covers users who changed their provider email but
// kept the same subject). The read-then-create window is not atomic; a
// concurrent first sync for the same identity can trip the unique index, in
// which case the create is retried as a lookup.
func (s *AuthService) SyncExternalUser(claim *identity.Claim) (*models.User, error) {
	if claim == nil || (claim.Email == "" && claim.Subject == "") {
		return nil, ErrIncompleteIdentity
	}

	email := NormalizeEmail(claim.Email)

	user, err := s.findByClaim(email, claim.Subject)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("reconcile lookup failed: %w", err)
	}

	if user == nil {
		created, err := s.createFromClaim(claim, email)
		if err == nil {
			return created, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		// Lost the create race: the other writer's row is the account.
		user, err = s.findByClaim(email, claim.Subject)
		if err != nil {
			return nil, fmt.Errorf("reconcile retry failed: %w", err)
		}
	}

	return s.reconcile(user, claim)
}

func (s *AuthService) findByClaim(email, subject string) (*models.User, error) {
	var user models.User
	if email != "" {
		err := s.db.Where("email = ?", s.cipher.Encrypt(email)).First(&user).Error
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if subject != "" {
		err := s.db.Where("supabase_id = ?", subject).First(&user).Error
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *AuthService) createFromClaim(claim *identity.Claim, email string) (*models.User, error) {
	name := claim.Name
	if name == "" && email != "" {
		name = strings.Split(email, "@")[0]
	}
	if name == "" {
		name = "Clinic Patient"
	}

	// The schema requires a password hash. Derive it from the subject id the
	// user cannot reasonably know: this account is never loginable via the
	// local-password path.
	hash, err := bcrypt.GenerateFromPassword([]byte(claim.Subject), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New(),
		FullName:     name,
		Email:        s.cipher.Encrypt(email),
		PasswordHash: string(hash),
		Role:         "patient",
		AuthProvider: providerTag(claim.Provider),
		AvatarURL:    claim.AvatarURL,
		// Externally-onboarded accounts arrive post-consent: the mobile
		// client gates the OAuth flow behind the KVKK screen.
		KVKKConsent:    true,
		KVKKAcceptedAt: &now,
		LastLoginAt:    &now,
	}
	if claim.Subject != "" {
		subject := claim.Subject
		user.SupabaseID = &subject
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) reconcile(user *models.User, claim *identity.Claim) (*models.User, error) {
	if user.SupabaseID == nil && claim.Subject != "" {
		subject := claim.Subject
		user.SupabaseID = &subject
	}
	if tag := providerTag(claim.Provider); user.AuthProvider != tag && claim.Subject != "" {
		user.AuthProvider = tag
	}
	if claim.Name != "" {
		user.FullName = claim.Name
	}
	if claim.AvatarURL != "" {
		user.AvatarURL = claim.AvatarURL
	}
	now := time.Now()
	user.LastLoginAt = &now

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to persist reconciled user: %w", err)
	}
	return user, nil
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*dto.UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	profile := s.toProfile(&user)
	return &profile, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = s.cipher.Encrypt(req.Phone)
	}
	if req.Address != "" {
		user.Address = s.cipher.Encrypt(req.Address)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	profile := s.toProfile(&user)
	return &profile, nil
}

func (s *AuthService) ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return ErrValidation
	}
	if len(req.NewPassword) < 8 {
		return ErrWeakPassword
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// IssueToken mints the signed local access credential: HS256, fixed expiry,
// local user id and normalized email as claims.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": s.cipher.Decrypt(user.Email),
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// toProfile builds the outward view by decrypting what was stored, so the
// response always reflects the normalized persisted record rather than
// echoing request input.
func (s *AuthService) toProfile(user *models.User) dto.UserProfile {
	return dto.UserProfile{
		ID:           user.ID,
		FullName:     user.FullName,
		Email:        s.cipher.Decrypt(user.Email),
		Phone:        s.cipher.Decrypt(user.Phone),
		Address:      s.cipher.Decrypt(user.Address),
		Role:         user.Role,
		AuthProvider: user.AuthProvider,
		AvatarURL:    user.AvatarURL,
		KVKKConsent:  user.KVKKConsent,
		IsActive:     user.IsActive,
		LastLoginAt:  user.LastLoginAt,
		CreatedAt:    user.CreatedAt,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func providerTag(provider string) string {
	if provider == "password" || provider == "email" {
		return "password"
	}
	return "google"
}

// isUniqueViolation covers gorm's translated error plus the raw postgres and
// sqlite forms (the latter shows up under the in-memory test driver).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
