package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
)

// contactService implements contact management. Contact ledger accounts are
// provisioned lazily by the account service, never here.
type contactService struct {
	BaseService
	contactRepo portsrepo.ContactRepositoryFacade
}

// NewContactService creates a new ContactService.
func NewContactService(
	contactRepo portsrepo.ContactRepositoryFacade,
	authorizer portssvc.TenantAuthorizerSvc,
) portssvc.ContactSvcFacade {
	s := &contactService{contactRepo: contactRepo}
	s.TenantAuthorizer = authorizer
	return s
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

// GetContactByID retrieves a specific contact by its ID.
func (s *contactService) GetContactByID(ctx context.Context, tenantID, contactID string, requestingUserID string) (*domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	contact, err := s.contactRepo.FindContactByID(ctx, tenantID, contactID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find contact by ID",
				slog.String("contact_id", contactID))
		}
		return nil, err
	}
	return contact, nil
}

// ListContacts retrieves a paginated list of contacts in a tenant.
func (s *contactService) ListContacts(ctx context.Context, tenantID string, requestingUserID string, params dto.ListContactsParams) (*dto.ListContactsResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var kind *domain.ContactKind
	if params.Kind != nil {
		k := domain.ContactKind(*params.Kind)
		kind = &k
	}

	contacts, err := s.contactRepo.ListContacts(ctx, tenantID, kind, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contacts",
			slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve contacts: %w", err)
	}
	return &dto.ListContactsResponse{Contacts: dto.ToContactResponses(contacts)}, nil
}

// CreateContact persists a new contact.
func (s *contactService) CreateContact(ctx context.Context, tenantID string, req dto.CreateContactRequest, creatorUserID string) (*domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	contact := domain.Contact{
		ContactID: uuid.NewString(),
		TenantID:  tenantID,
		Kind:      req.Kind,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		TaxNumber: req.TaxNumber,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		s.LogError(ctx, err, "Failed to save contact",
			slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	s.LogInfo(ctx, "Contact created successfully",
		slog.String("contact_id", contact.ContactID),
		slog.String("kind", string(contact.Kind)))
	return &contact, nil
}

// UpdateContact updates an existing contact's details. Kind is immutable
// because the provisioned account type depends on it.
func (s *contactService) UpdateContact(ctx context.Context, tenantID, contactID string, req dto.UpdateContactRequest, requestingUserID string) (*domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	contact, err := s.contactRepo.FindContactByID(ctx, tenantID, contactID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.TaxNumber != nil {
		contact.TaxNumber = *req.TaxNumber
	}
	contact.LastUpdatedAt = time.Now().UTC()
	contact.LastUpdatedBy = requestingUserID

	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		s.LogError(ctx, err, "Failed to update contact",
			slog.String("contact_id", contactID))
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}

// DeactivateContact marks a contact as inactive. Its ledger account and
// history survive.
func (s *contactService) DeactivateContact(ctx context.Context, tenantID, contactID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.contactRepo.FindContactByID(ctx, tenantID, contactID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.contactRepo.DeactivateContact(ctx, tenantID, contactID, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate contact",
			slog.String("contact_id", contactID))
		return fmt.Errorf("failed to deactivate contact: %w", err)
	}

	s.LogInfo(ctx, "Contact deactivated",
		slog.String("contact_id", contactID))
	return nil
}
