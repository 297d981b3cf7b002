package service

import (
	"strings"
	"sync"
	"time"

	"github.com/blogicum-next/internal/config"

	"github.com/mojocn/base64Captcha"
)

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// Captcha scenes.
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// CaptchaVerifyPayload is the verification request payload.
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge is a generated image challenge.
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService generates and verifies image captchas, gated per
// scene by configuration.
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu         sync.Mutex
	imageStore base64Captcha.Store
}

// NewCaptchaService creates the captcha service.
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Enabled reports whether the image provider is active.
func (s *CaptchaService) Enabled() bool {
	return strings.EqualFold(strings.TrimSpace(s.cfg.Provider), "image")
}

func (s *CaptchaService) sceneEnabled(scene string) bool {
	if !s.Enabled() {
		return false
	}
	switch scene {
	case CaptchaSceneLogin:
		return s.cfg.Scenes.Login
	case CaptchaSceneRegister:
		return s.cfg.Scenes.Register
	default:
		return false
	}
}

func (s *CaptchaService) ensureImageStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imageStore == nil {
		maxStore := s.cfg.Image.MaxStore
		if maxStore <= 0 {
			maxStore = 10240
		}
		expireSec := s.cfg.Image.ExpireSeconds
		if expireSec <= 0 {
			expireSec = 300
		}
		s.imageStore = base64Captcha.NewMemoryStore(maxStore, secondsToDuration(expireSec))
	}
	return s.imageStore
}

// GenerateImageChallenge generates an image captcha.
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if !s.Enabled() {
		return nil, ErrNotFound
	}

	store := s.ensureImageStore()
	driver := base64Captcha.NewDriverString(
		s.cfg.Image.Height,
		s.cfg.Image.Width,
		s.cfg.Image.NoiseCount,
		s.cfg.Image.ShowLine,
		s.cfg.Image.Length,
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, store)
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}

	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify checks a captcha answer for a scene. Disabled scenes always
// pass.
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.sceneEnabled(scene) {
		return nil
	}

	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.ensureImageStore().Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}
