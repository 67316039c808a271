package services

import (
	"testing"

	"github.com/isdelr/watchlist/internal/database"
	"github.com/isdelr/watchlist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceService_CreateAndList(t *testing.T) {
	db := newTestDB(t, database.MigrateResourceAPI)
	svc := NewResourceService(db, NewEventService(db))

	created, err := svc.CreateResource(models.Resource{
		ResourceName: strPtr("rig-1"),
		Status:       strPtr("active"),
		Description:  strPtr("d"),
		ResourceType: strPtr("HIL"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	resources, err := svc.GetAllResources()
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, created, resources[0])
}

func TestResourceService_MissingFieldsStoredAsNull(t *testing.T) {
	db := newTestDB(t, database.MigrateResourceAPI)
	svc := NewResourceService(db, nil)

	_, err := svc.CreateResource(models.Resource{ResourceName: strPtr("bare")})
	require.NoError(t, err)

	resources, err := svc.GetAllResources()
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "bare", *resources[0].ResourceName)
	assert.Nil(t, resources[0].Status)
	assert.Nil(t, resources[0].Description)
	assert.Nil(t, resources[0].ResourceType)
}

func TestResourceService_EmptyListIsNotNil(t *testing.T) {
	db := newTestDB(t, database.MigrateResourceAPI)
	svc := NewResourceService(db, nil)

	resources, err := svc.GetAllResources()
	require.NoError(t, err)
	assert.NotNil(t, resources)
	assert.Empty(t, resources)
}
