package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-rentify/internal/model"
	"go-rentify/pkg/apierror"
)

type PropertyService struct {
	store PropertyStore
}

func NewPropertyService(store PropertyStore) *PropertyService {
	return &PropertyService{store: store}
}

func (s *PropertyService) List(ctx context.Context) ([]model.Property, error) {
	return s.store.List(ctx)
}

func (s *PropertyService) ListBySeller(ctx context.Context, sellerID string) ([]model.Property, error) {
	return s.store.ListBySeller(ctx, sellerID)
}

// Get returns a property only when it is listed under sellerID.
func (s *PropertyService) Get(ctx context.Context, sellerID string, propertyID string) (model.Property, error) {
	property, err := s.store.FindByID(ctx, propertyID)
	if err != nil {
		return model.Property{}, err
	}
	if property.SellerID != sellerID {
		return model.Property{}, model.ErrPropertyNotFound
	}
	return property, nil
}

func (s *PropertyService) Create(ctx context.Context, sellerID string, req model.PropertyRequest) (model.Property, error) {
	if err := validateProperty(req); err != nil {
		return model.Property{}, err
	}

	now := time.Now().UTC()
	property := model.Property{
		ID:                uuid.NewString(),
		SellerID:          sellerID,
		Details:           req.Details,
		RentalTerms:       req.RentalTerms,
		SellerInformation: req.SellerInformation,
		MoveInDate:        req.MoveInDate.UTC(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.Create(ctx, property); err != nil {
		return model.Property{}, err
	}
	return property, nil
}

func (s *PropertyService) Update(ctx context.Context, sellerID string, propertyID string, req model.PropertyRequest) (model.Property, error) {
	if err := validateProperty(req); err != nil {
		return model.Property{}, err
	}

	property, err := s.owned(ctx, sellerID, propertyID)
	if err != nil {
		return model.Property{}, err
	}

	property.Details = req.Details
	property.RentalTerms = req.RentalTerms
	property.SellerInformation = req.SellerInformation
	property.MoveInDate = req.MoveInDate.UTC()
	property.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, property); err != nil {
		return model.Property{}, err
	}
	return property, nil
}

func (s *PropertyService) Delete(ctx context.Context, sellerID string, propertyID string) error {
	if _, err := s.owned(ctx, sellerID, propertyID); err != nil {
		return err
	}
	return s.store.Delete(ctx, propertyID)
}

func (s *PropertyService) owned(ctx context.Context, sellerID string, propertyID string) (model.Property, error) {
	property, err := s.store.FindByID(ctx, propertyID)
	if err != nil {
		return model.Property{}, err
	}
	if property.SellerID != sellerID {
		return model.Property{}, model.ErrForbidden
	}
	return property, nil
}

func validateProperty(req model.PropertyRequest) error {
	switch req.Details.PropertyType {
	case model.PropertyTypeApartment, model.PropertyTypeHouse:
	default:
		return apierror.BadRequest("property_type must be apartment or house", "property_details.property_type")
	}

	loc := req.Details.Location
	required := []struct{ field, value string }{
		{"property_details.location.address", loc.Address},
		{"property_details.location.city", loc.City},
		{"property_details.location.state", loc.State},
		{"property_details.location.zip_code", loc.ZipCode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apierror.BadRequest(r.field+" is required", r.field)
		}
	}

	if req.RentalTerms.RentAmount < 0 || req.RentalTerms.SecurityDeposit < 0 {
		return apierror.BadRequest("rent amount and security deposit cannot be negative", "rental_terms")
	}

	if req.MoveInDate == nil || req.MoveInDate.IsZero() {
		return apierror.BadRequest("move_in_date is required", "move_in_date")
	}

	return nil
}
