package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbay/scheduling-service/internal/domain"
	locationstorage "github.com/planbay/scheduling-service/internal/infra/storage/location"
	resourcestorage "github.com/planbay/scheduling-service/internal/infra/storage/resource"
	"github.com/planbay/scheduling-service/internal/service/registry/models"
)

type stubLogger struct{}

func (stubLogger) Debug(string, ...interface{}) {}
func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeLocationRepo struct {
	byID    map[int64]*domain.Location
	nextID  int64
	demoted []int64
	created []*domain.Location
	hours   map[int64]domain.WeekSchedule
}

func newFakeLocationRepo(locations ...*domain.Location) *fakeLocationRepo {
	byID := make(map[int64]*domain.Location)
	var max int64
	for _, loc := range locations {
		byID[loc.ID] = loc
		if loc.ID > max {
			max = loc.ID
		}
	}
	return &fakeLocationRepo{byID: byID, nextID: max, hours: make(map[int64]domain.WeekSchedule)}
}

func (r *fakeLocationRepo) Create(_ context.Context, location *domain.Location) (*domain.Location, error) {
	r.nextID++
	location.ID = r.nextID
	r.byID[location.ID] = location
	r.created = append(r.created, location)
	return location, nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, orgID, locationID int64) (*domain.Location, error) {
	loc, ok := r.byID[locationID]
	if !ok || loc.OrgID != orgID {
		return nil, locationstorage.ErrLocationNotFound
	}
	copied := *loc
	return &copied, nil
}

func (r *fakeLocationRepo) ListByOrg(_ context.Context, orgID int64, activeOnly bool) ([]*domain.Location, error) {
	var result []*domain.Location
	for _, loc := range r.byID {
		if loc.OrgID != orgID {
			continue
		}
		if activeOnly && !loc.Active {
			continue
		}
		result = append(result, loc)
	}
	return result, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, location *domain.Location) (*domain.Location, error) {
	if _, ok := r.byID[location.ID]; !ok {
		return nil, locationstorage.ErrLocationNotFound
	}
	r.byID[location.ID] = location
	return location, nil
}

func (r *fakeLocationRepo) SetHours(_ context.Context, _, locationID int64, hours domain.WeekSchedule) error {
	r.hours[locationID] = hours
	return nil
}

func (r *fakeLocationRepo) DemoteHeadquarters(_ context.Context, orgID int64) error {
	r.demoted = append(r.demoted, orgID)
	for _, loc := range r.byID {
		if loc.OrgID == orgID {
			loc.Headquarters = false
		}
	}
	return nil
}

type fakeResourceRepo struct {
	byID        map[int64]*domain.Resource
	nextID      int64
	deactivated []int64
}

func newFakeResourceRepo(resources ...*domain.Resource) *fakeResourceRepo {
	byID := make(map[int64]*domain.Resource)
	var max int64
	for _, res := range resources {
		byID[res.ID] = res
		if res.ID > max {
			max = res.ID
		}
	}
	return &fakeResourceRepo{byID: byID, nextID: max}
}

func (r *fakeResourceRepo) Create(_ context.Context, resource *domain.Resource) (*domain.Resource, error) {
	r.nextID++
	resource.ID = r.nextID
	r.byID[resource.ID] = resource
	return resource, nil
}

func (r *fakeResourceRepo) GetByID(_ context.Context, orgID, resourceID int64) (*domain.Resource, error) {
	res, ok := r.byID[resourceID]
	if !ok || res.OrgID != orgID {
		return nil, resourcestorage.ErrResourceNotFound
	}
	copied := *res
	return &copied, nil
}

func (r *fakeResourceRepo) ListByOrg(_ context.Context, orgID int64, locationID *int64) ([]*domain.Resource, error) {
	var result []*domain.Resource
	for _, res := range r.byID {
		if res.OrgID != orgID {
			continue
		}
		if locationID != nil && res.LocationID != *locationID {
			continue
		}
		result = append(result, res)
	}
	return result, nil
}

func (r *fakeResourceRepo) Update(_ context.Context, resource *domain.Resource) (*domain.Resource, error) {
	if _, ok := r.byID[resource.ID]; !ok {
		return nil, resourcestorage.ErrResourceNotFound
	}
	r.byID[resource.ID] = resource
	return resource, nil
}

func (r *fakeResourceRepo) Deactivate(_ context.Context, orgID, resourceID int64) error {
	res, ok := r.byID[resourceID]
	if !ok || res.OrgID != orgID {
		return resourcestorage.ErrResourceNotFound
	}
	res.Active = false
	r.deactivated = append(r.deactivated, resourceID)
	return nil
}

func weekdayHours() []models.DayHoursSpec {
	return []models.DayHoursSpec{
		{Weekday: 1, OpenTime: "09:00", CloseTime: "18:00"},
		{Weekday: 2, OpenTime: "09:00", CloseTime: "18:00"},
	}
}

func TestCreateLocation(t *testing.T) {
	locations := newFakeLocationRepo()
	svc := New(locations, newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	resp, err := svc.CreateLocation(context.Background(), &models.CreateLocationRequest{
		OrgID:    1,
		UserRole: domain.RoleAdmin,
		Name:     "  Main Garage  ",
		Hours:    weekdayHours(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Main Garage", resp.Name)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
	assert.True(t, resp.Active)
	assert.Len(t, resp.Hours, 2)
}

func TestCreateLocation_RequiresManagerRole(t *testing.T) {
	svc := New(newFakeLocationRepo(), newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	_, err := svc.CreateLocation(context.Background(), &models.CreateLocationRequest{
		OrgID:    1,
		UserRole: domain.RoleStaff,
		Name:     "Garage",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateLocation_HeadquartersDemotesPrevious(t *testing.T) {
	existing := &domain.Location{ID: 1, OrgID: 1, Name: "Old HQ", Active: true, Headquarters: true}
	locations := newFakeLocationRepo(existing)
	tx := &fakeTxManager{}
	svc := New(locations, newFakeResourceRepo(), tx, stubLogger{})

	resp, err := svc.CreateLocation(context.Background(), &models.CreateLocationRequest{
		OrgID:        1,
		UserRole:     domain.RoleOwner,
		Name:         "New HQ",
		Headquarters: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.Headquarters)
	assert.Equal(t, []int64{1}, locations.demoted)
	assert.False(t, existing.Headquarters)
	assert.Equal(t, 1, tx.calls)
}

func TestCreateLocation_InvalidHours(t *testing.T) {
	svc := New(newFakeLocationRepo(), newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	tests := []struct {
		name  string
		hours []models.DayHoursSpec
	}{
		{"open after close", []models.DayHoursSpec{{Weekday: 1, OpenTime: "18:00", CloseTime: "09:00"}}},
		{"open equals close", []models.DayHoursSpec{{Weekday: 1, OpenTime: "09:00", CloseTime: "09:00"}}},
		{"weekday out of range", []models.DayHoursSpec{{Weekday: 7, OpenTime: "09:00", CloseTime: "18:00"}}},
		{"duplicate weekday", []models.DayHoursSpec{
			{Weekday: 1, OpenTime: "09:00", CloseTime: "12:00"},
			{Weekday: 1, OpenTime: "13:00", CloseTime: "18:00"},
		}},
		{"bad time format", []models.DayHoursSpec{{Weekday: 1, OpenTime: "25:00", CloseTime: "18:00"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateLocation(context.Background(), &models.CreateLocationRequest{
				OrgID:    1,
				UserRole: domain.RoleAdmin,
				Name:     "Garage",
				Hours:    tt.hours,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateLocation_PromoteToHeadquarters(t *testing.T) {
	oldHQ := &domain.Location{ID: 1, OrgID: 1, Name: "Old HQ", Active: true, Headquarters: true}
	branch := &domain.Location{ID: 2, OrgID: 1, Name: "Branch", Active: true}
	locations := newFakeLocationRepo(oldHQ, branch)
	svc := New(locations, newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	hq := true
	resp, err := svc.UpdateLocation(context.Background(), &models.UpdateLocationRequest{
		OrgID:        1,
		UserRole:     domain.RoleAdmin,
		LocationID:   2,
		Headquarters: &hq,
	})
	require.NoError(t, err)

	assert.True(t, resp.Headquarters)
	assert.Equal(t, []int64{1}, locations.demoted)
	assert.False(t, oldHQ.Headquarters)
}

func TestUpdateLocation_KeepingHQDoesNotDemote(t *testing.T) {
	hqLoc := &domain.Location{ID: 1, OrgID: 1, Name: "HQ", Active: true, Headquarters: true}
	locations := newFakeLocationRepo(hqLoc)
	svc := New(locations, newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	hq := true
	name := "HQ Renamed"
	_, err := svc.UpdateLocation(context.Background(), &models.UpdateLocationRequest{
		OrgID:        1,
		UserRole:     domain.RoleAdmin,
		LocationID:   1,
		Name:         &name,
		Headquarters: &hq,
	})
	require.NoError(t, err)
	assert.Empty(t, locations.demoted)
}

func TestUpdateLocation_NotFound(t *testing.T) {
	svc := New(newFakeLocationRepo(), newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	_, err := svc.UpdateLocation(context.Background(), &models.UpdateLocationRequest{
		OrgID:      1,
		UserRole:   domain.RoleAdmin,
		LocationID: 99,
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestSetLocationHours(t *testing.T) {
	loc := &domain.Location{ID: 1, OrgID: 1, Name: "Garage", Active: true}
	locations := newFakeLocationRepo(loc)
	svc := New(locations, newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	resp, err := svc.SetLocationHours(context.Background(), &models.SetLocationHoursRequest{
		OrgID:      1,
		UserRole:   domain.RoleAdmin,
		LocationID: 1,
		Hours:      weekdayHours(),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Hours, 2)
	assert.NotNil(t, locations.hours[1][1])
}

func TestGetLocation(t *testing.T) {
	loc := &domain.Location{ID: 1, OrgID: 1, Name: "Garage", Address: "12 Bay St", Active: true}
	svc := New(newFakeLocationRepo(loc), newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	resp, err := svc.GetLocation(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, "Garage", resp.Name)
	assert.Equal(t, "12 Bay St", resp.Address)

	// Чужая организация не видит локацию
	_, err = svc.GetLocation(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestCreateResource(t *testing.T) {
	locations := newFakeLocationRepo(&domain.Location{ID: 10, OrgID: 1, Name: "Garage", Active: true})
	resources := newFakeResourceRepo()
	svc := New(locations, resources, &fakeTxManager{}, stubLogger{})

	resp, err := svc.CreateResource(context.Background(), &models.CreateResourceRequest{
		OrgID:      1,
		UserRole:   domain.RoleAdmin,
		LocationID: 10,
		Name:       "Bay 1",
		Type:       string(domain.ResourceTypeBay),
	})
	require.NoError(t, err)

	// Вместимость по умолчанию
	assert.Equal(t, domain.DefaultMaxConcurrentBookings, resp.MaxConcurrentBookings)
	assert.True(t, resp.Active)
}

func TestCreateResource_ForeignLocationLooksMissing(t *testing.T) {
	// Локация принадлежит другой организации
	locations := newFakeLocationRepo(&domain.Location{ID: 10, OrgID: 2, Name: "Garage", Active: true})
	svc := New(locations, newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	_, err := svc.CreateResource(context.Background(), &models.CreateResourceRequest{
		OrgID:      1,
		UserRole:   domain.RoleAdmin,
		LocationID: 10,
		Name:       "Bay 1",
		Type:       string(domain.ResourceTypeBay),
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestCreateResource_CapacityBounds(t *testing.T) {
	locations := newFakeLocationRepo(&domain.Location{ID: 10, OrgID: 1, Name: "Garage", Active: true})
	svc := New(locations, newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	for _, capacity := range []int{-1, domain.MaxConcurrentBookingsLimit + 1} {
		_, err := svc.CreateResource(context.Background(), &models.CreateResourceRequest{
			OrgID:                 1,
			UserRole:              domain.RoleAdmin,
			LocationID:            10,
			Name:                  "Bay 1",
			Type:                  string(domain.ResourceTypeBay),
			MaxConcurrentBookings: capacity,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreateResource_UnknownType(t *testing.T) {
	locations := newFakeLocationRepo(&domain.Location{ID: 10, OrgID: 1, Name: "Garage", Active: true})
	svc := New(locations, newFakeResourceRepo(), &fakeTxManager{}, stubLogger{})

	_, err := svc.CreateResource(context.Background(), &models.CreateResourceRequest{
		OrgID:      1,
		UserRole:   domain.RoleAdmin,
		LocationID: 10,
		Name:       "Bay 1",
		Type:       "spaceship",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateResource(t *testing.T) {
	resources := newFakeResourceRepo(&domain.Resource{
		ID: 100, OrgID: 1, LocationID: 10, Name: "Bay 1",
		Type: domain.ResourceTypeBay, MaxConcurrentBookings: 1, Active: true,
	})
	svc := New(newFakeLocationRepo(), resources, &fakeTxManager{}, stubLogger{})

	capacity := 3
	resp, err := svc.UpdateResource(context.Background(), &models.UpdateResourceRequest{
		OrgID:                 1,
		UserRole:              domain.RoleAdmin,
		ResourceID:            100,
		MaxConcurrentBookings: &capacity,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.MaxConcurrentBookings)
}

func TestDeactivateResource(t *testing.T) {
	resources := newFakeResourceRepo(&domain.Resource{
		ID: 100, OrgID: 1, LocationID: 10, Name: "Bay 1",
		Type: domain.ResourceTypeBay, MaxConcurrentBookings: 1, Active: true,
	})
	svc := New(newFakeLocationRepo(), resources, &fakeTxManager{}, stubLogger{})

	require.NoError(t, svc.DeactivateResource(context.Background(), 1, domain.RoleAdmin, 100))
	assert.Equal(t, []int64{100}, resources.deactivated)

	err := svc.DeactivateResource(context.Background(), 1, domain.RoleStaff, 100)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.DeactivateResource(context.Background(), 1, domain.RoleAdmin, 999)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}
