package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/loctime/controldoc/internal/domain/entities"
)

// CacheService is the explicit local-cache collaborator: a best-effort,
// read-through mirror of store records. It is never authoritative; every
// miss or failure falls back to the database.
type CacheService interface {
	GetCompany(ctx context.Context, companyID string) (*entities.Company, error)
	SetCompany(ctx context.Context, company *entities.Company) error
	InvalidateCompany(ctx context.Context, companyID string) error

	GetRequiredDocuments(ctx context.Context, companyID string) ([]*entities.RequiredDocument, error)
	SetRequiredDocuments(ctx context.Context, companyID string, docs []*entities.RequiredDocument) error
	InvalidateRequiredDocuments(ctx context.Context, companyID string) error
}

type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, duration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type redisCacheService struct {
	client        RedisClient
	cacheDuration time.Duration
}

func NewRedisCacheService(client RedisClient, cacheDuration time.Duration) *redisCacheService {
	return &redisCacheService{
		client:        client,
		cacheDuration: cacheDuration,
	}
}

func companyKey(companyID string) string {
	return fmt.Sprintf("company:%s", companyID)
}

func requiredDocsKey(companyID string) string {
	return fmt.Sprintf("reqdocs:company=%s", companyID)
}

func (s *redisCacheService) GetCompany(ctx context.Context, companyID string) (*entities.Company, error) {
	data, err := s.client.Get(ctx, companyKey(companyID))
	if err != nil {
		return nil, err
	}

	var company entities.Company
	if err := json.Unmarshal([]byte(data), &company); err != nil {
		return nil, err
	}

	return &company, nil
}

func (s *redisCacheService) SetCompany(ctx context.Context, company *entities.Company) error {
	data, err := json.Marshal(company)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, companyKey(company.ID), data, s.cacheDuration)
}

func (s *redisCacheService) InvalidateCompany(ctx context.Context, companyID string) error {
	return s.client.Del(ctx, companyKey(companyID))
}

func (s *redisCacheService) GetRequiredDocuments(ctx context.Context, companyID string) ([]*entities.RequiredDocument, error) {
	data, err := s.client.Get(ctx, requiredDocsKey(companyID))
	if err != nil {
		return nil, err
	}

	var docs []*entities.RequiredDocument
	if err := json.Unmarshal([]byte(data), &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func (s *redisCacheService) SetRequiredDocuments(ctx context.Context, companyID string, docs []*entities.RequiredDocument) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, requiredDocsKey(companyID), data, s.cacheDuration)
}

func (s *redisCacheService) InvalidateRequiredDocuments(ctx context.Context, companyID string) error {
	return s.client.Del(ctx, requiredDocsKey(companyID))
}
