package application

import (
	"context"
	"errors"
	"net/mail"

	"github.com/sirupsen/logrus"

	"github.com/supgamedex/gamedex-api/config"
	"github.com/supgamedex/gamedex-api/internal/domain/entity"
	repo "github.com/supgamedex/gamedex-api/internal/domain/repository"
	"github.com/supgamedex/gamedex-api/pkg/helpers"
	"github.com/supgamedex/gamedex-api/pkg/mailer"
)

// EmailQueue enqueues email jobs for asynchronous delivery.
// *helpers.RabbitPublisher satisfies it.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// AccountService implements registration, email confirmation, login and
// password reset.
type AccountService struct {
	Users  repo.UserRepository
	Tokens *helpers.TokenManager
	Mail   EmailQueue
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewAccountService(users repo.UserRepository, tokens *helpers.TokenManager, mailq EmailQueue, cfg *config.Config, logger *logrus.Logger) *AccountService {
	return &AccountService{Users: users, Tokens: tokens, Mail: mailq, Cfg: cfg, Logger: logger}
}

// Register stores an inactive account and enqueues a confirmation email
// carrying a 24h token. Enqueue failures are logged, not fatal: the account
// row is already committed and the email can be re-sent out of band.
func (s *AccountService) Register(ctx context.Context, firstName, email, password string) (*entity.User, error) {
	if !helpers.MeetsStrengthPolicy(password) {
		return nil, ErrWeakPassword
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{FirstName: firstName, Email: email, PasswordHash: hash, IsActive: false}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, _, err := s.Tokens.Issue(u.Email, s.Cfg.ConfirmTTL)
	if err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Error("confirm token issue failed")
		return u, nil
	}
	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateConfirmEmail,
		Data: map[string]string{
			"name":       u.FirstName,
			"link":       s.Cfg.ConfirmEmailURL + "?token=" + token,
			"expires_in": s.Cfg.ConfirmTTL.String(),
		},
	})
	return u, nil
}

func (s *AccountService) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Mail == nil || !s.Cfg.MailSendEnabled {
		s.Logger.WithField("to", job.To).Debug("email sending disabled, skipping enqueue")
		return
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"to": job.To, "template": job.Template,
		}).Warn("email enqueue failed")
	}
}

// Confirm validates a confirmation token and activates the matching
// account. Confirming twice is a no-op success.
func (s *AccountService) Confirm(ctx context.Context, token string) error {
	email, err := s.Tokens.Validate(token)
	if err != nil {
		return ErrInvalidToken
	}
	if err := s.Users.SetActive(ctx, email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password fail with the same error to avoid account enumeration; an
// unconfirmed account with a matching password fails distinctly.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return "", nil, ErrAccountInactive
	}
	token, _, err := s.Tokens.Issue(u.Email, s.Cfg.AccessTTL)
	if err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Error("access token issue failed")
		return "", nil, err
	}
	return token, u, nil
}

// RequestPasswordReset issues a 30m reset token and enqueues the reset
// email. Unlike registration, an enqueue failure is fatal here: there is
// no committed state the caller could otherwise act on.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	token, _, err := s.Tokens.Issue(u.Email, s.Cfg.ResetTTL)
	if err != nil {
		return err
	}
	if s.Mail == nil || !s.Cfg.MailSendEnabled {
		return ErrMailDispatch
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateResetPassword,
		Data: map[string]string{
			"name":       u.FirstName,
			"link":       s.Cfg.ResetPasswordURL + "?token=" + token,
			"expires_in": s.Cfg.ResetTTL.String(),
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Error("reset email enqueue failed")
		return ErrMailDispatch
	}
	return nil
}

// ResetPassword validates a reset token, enforces the strength policy and
// overwrites the stored hash. Previously issued access tokens stay valid
// until expiry.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := s.Tokens.Validate(token)
	if err != nil {
		return ErrInvalidToken
	}
	if !helpers.MeetsStrengthPolicy(newPassword) {
		return ErrWeakPassword
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, email, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Profile returns the account for a validated token subject.
func (s *AccountService) Profile(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
