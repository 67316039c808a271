package services

import (
	"database/sql"
	"fmt"

	"github.com/isdelr/watchlist/internal/models"
)

// ResourceServiceProvider defines the interface for resource services.
type ResourceServiceProvider interface {
	GetAllResources() ([]models.Resource, error)
	CreateResource(resource models.Resource) (models.Resource, error)
}

// ResourceService provides business logic for test-rig resources.
type ResourceService struct {
	db           *sql.DB
	eventService EventServiceProvider
}

// NewResourceService creates a new ResourceService.
func NewResourceService(db *sql.DB, eventService EventServiceProvider) *ResourceService {
	return &ResourceService{db: db, eventService: eventService}
}

// GetAllResources retrieves all resources from the database.
func (s *ResourceService) GetAllResources() ([]models.Resource, error) {
	rows, err := s.db.Query("SELECT id, resource_name, status, description, resource_type FROM resource ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var r models.Resource
		var name, status, desc, rtype sql.NullString
		if err := rows.Scan(&r.ID, &name, &status, &desc, &rtype); err != nil {
			return nil, err
		}
		r.ResourceName = nullToPtr(name)
		r.Status = nullToPtr(status)
		r.Description = nullToPtr(desc)
		r.ResourceType = nullToPtr(rtype)
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// CreateResource stores a resource as given; absent fields are stored as NULL.
func (s *ResourceService) CreateResource(resource models.Resource) (models.Resource, error) {
	stmt, err := s.db.Prepare("INSERT INTO resource(resource_name, status, description, resource_type) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.Resource{}, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(resource.ResourceName, resource.Status, resource.Description, resource.ResourceType)
	if err != nil {
		return models.Resource{}, fmt.Errorf("failed to execute statement: %w", err)
	}
	if resource.ID, err = res.LastInsertId(); err != nil {
		return models.Resource{}, err
	}

	name := "<unnamed>"
	if resource.ResourceName != nil {
		name = *resource.ResourceName
	}
	recordEvent(s.eventService, "resource.create", "info", fmt.Sprintf("Resource '%s' added.", name))
	return resource, nil
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
