package service

import (
	"time"

	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/repo"
)

// Mock NewsletterRepository for testing
type mockNewsletterRepository struct {
	byEmail map[string]*domain.NewsletterSubscription
	nextID  int64
}

func newMockNewsletterRepository() *mockNewsletterRepository {
	return &mockNewsletterRepository{
		byEmail: make(map[string]*domain.NewsletterSubscription),
		nextID:  1,
	}
}

func (m *mockNewsletterRepository) Create(sub *domain.NewsletterSubscription) error {
	sub.ID = m.nextID
	m.nextID++
	sub.CreatedAt = time.Now()
	m.byEmail[sub.Email] = sub
	return nil
}

func (m *mockNewsletterRepository) GetByEmail(email string) (*domain.NewsletterSubscription, error) {
	sub, exists := m.byEmail[email]
	if !exists {
		return nil, nil
	}
	return sub, nil
}

func (m *mockNewsletterRepository) List(offset, limit int) ([]*domain.NewsletterSubscription, int64, error) {
	subs := make([]*domain.NewsletterSubscription, 0, len(m.byEmail))
	for _, sub := range m.byEmail {
		subs = append(subs, sub)
	}
	total := int64(len(subs))
	if offset >= len(subs) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(subs) {
		end = len(subs)
	}
	return subs[offset:end], total, nil
}

func (m *mockNewsletterRepository) Delete(email string) error {
	if _, exists := m.byEmail[email]; !exists {
		return repo.ErrSubscriptionNotFound
	}
	delete(m.byEmail, email)
	return nil
}
