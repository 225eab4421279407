package content

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
)

// CompanyPatch holds a partial company profile update. Nil fields are left untouched.
type CompanyPatch struct {
	CompanyFullName     *string `json:"companyFullName,omitempty"`
	CompanyAbbreviation *string `json:"companyAbbreviation,omitempty"`
	BrandName           *string `json:"brandName,omitempty"`
	ContactNumber       *string `json:"contactNumber,omitempty"`
	FaxNumber           *string `json:"faxNumber,omitempty"`
	PhoneNumber         *string `json:"phoneNumber,omitempty"`
	Email               *string `json:"email,omitempty"`
	WatermarkText       *string `json:"watermarkText,omitempty"`
	CopyrightText       *string `json:"copyrightText,omitempty"`
	ContactAddress      *string `json:"contactAddress,omitempty"`
	QRCodeImage         *string `json:"qrCodeImage,omitempty"`
	PostalCode          *string `json:"postalCode,omitempty"`
	CustomerServiceQQ   *string `json:"customerServiceQQ,omitempty"`
	RegistrationNumber  *string `json:"registrationNumber,omitempty"`
	DomainInfo          *string `json:"domainInfo,omitempty"`
}

func (p CompanyPatch) apply(c CompanyConfig) CompanyConfig {
	set(&c.CompanyFullName, p.CompanyFullName)
	set(&c.CompanyAbbreviation, p.CompanyAbbreviation)
	set(&c.BrandName, p.BrandName)
	set(&c.ContactNumber, p.ContactNumber)
	set(&c.FaxNumber, p.FaxNumber)
	set(&c.PhoneNumber, p.PhoneNumber)
	set(&c.Email, p.Email)
	set(&c.WatermarkText, p.WatermarkText)
	set(&c.CopyrightText, p.CopyrightText)
	set(&c.ContactAddress, p.ContactAddress)
	set(&c.QRCodeImage, p.QRCodeImage)
	set(&c.PostalCode, p.PostalCode)
	set(&c.CustomerServiceQQ, p.CustomerServiceQQ)
	set(&c.RegistrationNumber, p.RegistrationNumber)
	set(&c.DomainInfo, p.DomainInfo)
	return c
}

// CompanyService keeps the single company profile document.
type CompanyService struct {
	mu       sync.RWMutex
	backend  snapshot.Backend
	opts     *options
	current  CompanyConfig
	defaults CompanyConfig
}

func NewCompanyService(backend snapshot.Backend, opts ...Option) *CompanyService {
	return &CompanyService{backend: backend, opts: applyOptions(opts)}
}

// Load reads the stored profile. Missing fields in the stored document keep the value
// from defaults; when nothing is stored, defaults is saved as is.
func (s *CompanyService) Load(ctx context.Context, defaults CompanyConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = defaults

	data, err := s.backend.Load(ctx, KeyCompany)
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		if err := s.save(ctx, defaults); err != nil {
			return err
		}
		s.current = defaults
		return nil
	case err != nil:
		return err
	}

	cfg := defaults
	if err := json.Unmarshal(data, &cfg); err != nil {
		return errors.Join(ErrCorruptSnapshot, err)
	}
	s.current = cfg
	return nil
}

func (s *CompanyService) Get() CompanyConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update merges the non-nil fields of p into the profile.
func (s *CompanyService) Update(ctx context.Context, p CompanyPatch) (CompanyConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := p.apply(s.current)
	if err := s.save(ctx, next); err != nil {
		return s.current, err
	}
	s.current = next
	s.opts.log.InfoContext(ctx, "company profile updated")
	return next, nil
}

// Reset restores the defaults given to Load.
func (s *CompanyService) Reset(ctx context.Context) (CompanyConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, s.defaults); err != nil {
		return s.current, err
	}
	s.current = s.defaults
	s.opts.log.InfoContext(ctx, "company profile reset")
	return s.current, nil
}

func (s *CompanyService) save(ctx context.Context, cfg CompanyConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return errors.Join(ErrFlush, err)
	}
	if err := s.backend.Save(ctx, KeyCompany, data); err != nil {
		s.opts.log.ErrorContext(ctx, "failed to persist company profile", slog.String("error", err.Error()))
		return errors.Join(ErrFlush, err)
	}
	return nil
}
