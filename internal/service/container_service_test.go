package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portops/internal/domain"
	"portops/internal/port"
	"portops/internal/service"
	"portops/mocks"
)

type containerFixture struct {
	containers *mocks.MockContainerRepo
	vessels    *mocks.MockVesselRepo
	email      *mocks.MockEmailSender
	svc        service.ContainerService
}

func newContainerFixture(depotEmail string) *containerFixture {
	f := &containerFixture{
		containers: new(mocks.MockContainerRepo),
		vessels:    new(mocks.MockVesselRepo),
		email:      new(mocks.MockEmailSender),
	}
	f.svc = service.NewContainerService(
		f.containers, f.vessels, f.email,
		domain.DefaultDetentionConfig, depotEmail, fixedClock,
	)
	return f
}

func floatPtr(v float64) *float64 { return &v }

// board returns two vessels' containers. Declaration 500 spans both vessels
// and disagrees on vessel B, so the vessel A container inherits MISMATCH.
func board(vesselA, vesselB uuid.UUID) []domain.Container {
	return []domain.Container{
		{
			ID: uuid.New(), VesselID: vesselA, ContainerNo: "AAAU0000001", UnitType: domain.UnitTypeContainer,
			Size: "40'HC", Pkgs: 16, Weight: 28.8, TkNhaVC: "500", TkDnlOla: "600",
			CustomsPkgs: floatPtr(16), CustomsWeight: floatPtr(28.8),
			Status: domain.ContainerStatusReady, DetExpiry: "2025-04-11",
		},
		{
			ID: uuid.New(), VesselID: vesselB, ContainerNo: "BBBU0000001", UnitType: domain.UnitTypeContainer,
			Size: "20'DC", Pkgs: 16, Weight: 28.8, TkNhaVC: "500",
			CustomsPkgs: floatPtr(15), CustomsWeight: floatPtr(28.8),
			Status: domain.ContainerStatusPending, DetExpiry: "2025-04-30",
		},
		{
			ID: uuid.New(), VesselID: vesselA, ContainerNo: "43C12345", UnitType: domain.UnitTypeVehicle,
			Size: "Xe thớt", Pkgs: 16, Weight: 28.8,
			Status: domain.ContainerStatusCompleted, DetExpiry: "2025-04-14",
		},
	}
}

func TestContainerService_List_OverlaysMismatchAcrossVessels(t *testing.T) {
	f := newContainerFixture("")
	a, b := uuid.New(), uuid.New()
	f.containers.On("List", mock.Anything, port.ContainerFilter{}).Return(board(a, b), nil)

	views, err := f.svc.List(context.Background(), service.ContainerListFilter{VesselID: &a})
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "AAAU0000001", views[0].ContainerNo)
	assert.Equal(t, domain.ContainerStatusMismatch, views[0].EffectiveStatus)
	assert.Equal(t, domain.ContainerStatusReady, views[0].Status, "stored status is untouched")
	assert.Equal(t, domain.DetentionUrgent, views[0].Detention)

	assert.Equal(t, domain.ContainerStatusCompleted, views[1].EffectiveStatus)
	assert.Equal(t, domain.DetentionWarning, views[1].Detention)
}

func TestContainerService_List_Filters(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	tests := []struct {
		name   string
		filter service.ContainerListFilter
		want   []string
	}{
		{"all", service.ContainerListFilter{}, []string{"AAAU0000001", "BBBU0000001", "43C12345"}},
		{"vehicles", service.ContainerListFilter{Unit: "xe"}, []string{"43C12345"}},
		{"size substring", service.ContainerListFilter{Unit: "40"}, []string{"AAAU0000001"}},
		{"explicit all", service.ContainerListFilter{Unit: "ALL"}, []string{"AAAU0000001", "BBBU0000001", "43C12345"}},
		{"effective status", service.ContainerListFilter{Status: domain.ContainerStatusMismatch}, []string{"AAAU0000001", "BBBU0000001"}},
		{"stored status hidden by overlay", service.ContainerListFilter{Status: domain.ContainerStatusReady}, []string{}},
		{"export shows completed vehicles", service.ContainerListFilter{BusinessType: domain.BusinessTypeExport}, []string{"43C12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newContainerFixture("")
			f.containers.On("List", mock.Anything, port.ContainerFilter{}).Return(board(a, b), nil)

			views, err := f.svc.List(context.Background(), tt.filter)
			require.NoError(t, err)
			got := []string{}
			for _, v := range views {
				got = append(got, v.ContainerNo)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContainerService_List_ExportDisablesOverlay(t *testing.T) {
	f := newContainerFixture("")
	a, b := uuid.New(), uuid.New()
	containers := board(a, b)
	containers[2].TkNhaVC = "500" // completed vehicle shares the bad declaration
	f.containers.On("List", mock.Anything, port.ContainerFilter{}).Return(containers, nil)

	views, err := f.svc.List(context.Background(), service.ContainerListFilter{BusinessType: domain.BusinessTypeExport})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, domain.ContainerStatusCompleted, views[0].EffectiveStatus)
}

func TestContainerService_Warnings(t *testing.T) {
	f := newContainerFixture("")
	a, b := uuid.New(), uuid.New()
	f.containers.On("List", mock.Anything, port.ContainerFilter{}).Return(board(a, b), nil)

	w, err := f.svc.Warnings(context.Background(), service.ContainerListFilter{})
	require.NoError(t, err)
	assert.Len(t, w.Mismatches, 2)
	require.Len(t, w.PendingDeclarations, 1)
	assert.Equal(t, "BBBU0000001", w.PendingDeclarations[0].ContainerNo)
}

func TestContainerService_Warnings_Export(t *testing.T) {
	f := newContainerFixture("")

	w, err := f.svc.Warnings(context.Background(), service.ContainerListFilter{BusinessType: domain.BusinessTypeExport})
	require.NoError(t, err)
	assert.Empty(t, w.Mismatches)
	assert.Empty(t, w.PendingDeclarations)
	f.containers.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestContainerService_MismatchedDeclarations(t *testing.T) {
	f := newContainerFixture("")
	a, b := uuid.New(), uuid.New()
	f.containers.On("List", mock.Anything, port.ContainerFilter{}).Return(board(a, b), nil)

	got, err := f.svc.MismatchedDeclarations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"500"}, got)
}

func TestContainerService_List_RepoError(t *testing.T) {
	f := newContainerFixture("")
	f.containers.On("List", mock.Anything, port.ContainerFilter{}).Return(nil, errors.New("boom"))

	_, err := f.svc.List(context.Background(), service.ContainerListFilter{})
	assert.EqualError(t, err, "boom")
}

func TestContainerService_CompleteTally(t *testing.T) {
	f := newContainerFixture("")
	id := uuid.New()
	done := &domain.Container{ID: id, Status: domain.ContainerStatusCompleted, TallyApproved: true, UpdatedAt: fixedNow}
	f.containers.On("Complete", mock.Anything, id, fixedNow).Return(done, nil)

	got, err := f.svc.CompleteTally(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.ContainerStatusCompleted, got.Status)
	assert.True(t, got.TallyApproved)
	assert.Equal(t, fixedNow, got.UpdatedAt)
	f.containers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestContainerService_CompleteTally_NotFound(t *testing.T) {
	f := newContainerFixture("")
	id := uuid.New()
	f.containers.On("Complete", mock.Anything, id, fixedNow).Return(nil, domain.ErrContainerNotFound)

	_, err := f.svc.CompleteTally(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrContainerNotFound)
}

func TestContainerService_Urge(t *testing.T) {
	f := newContainerFixture("depot@example.com")
	id, vesselID := uuid.New(), uuid.New()
	before := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	c := &domain.Container{ID: id, VesselID: vesselID, ContainerNo: "AAAU0000001", TkNhaVC: "500", UpdatedAt: before}

	f.containers.On("GetByID", mock.Anything, id).Return(c, nil)
	f.vessels.On("GetByID", mock.Anything, vesselID).Return(&domain.Vessel{ID: vesselID, VesselName: "WAN HAI 272"}, nil)
	f.containers.On("MarkUrged", mock.Anything, id, fixedNow).Return(nil)
	f.email.On("SendUrgeNotice", mock.Anything, "depot@example.com", port.UrgeNotice{
		VesselName: "WAN HAI 272", ContainerNo: "AAAU0000001", TkNhaVC: "500",
	}).Return(nil)

	got, err := f.svc.Urge(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, got.LastUrgedAt)
	assert.Equal(t, fixedNow, *got.LastUrgedAt)
	assert.Equal(t, before, got.UpdatedAt)
	f.containers.AssertExpectations(t)
	f.email.AssertExpectations(t)
}

func TestContainerService_Urge_NotFoundOnWrite(t *testing.T) {
	f := newContainerFixture("depot@example.com")
	id, vesselID := uuid.New(), uuid.New()
	c := &domain.Container{ID: id, VesselID: vesselID}

	f.containers.On("GetByID", mock.Anything, id).Return(c, nil)
	f.vessels.On("GetByID", mock.Anything, vesselID).Return(&domain.Vessel{ID: vesselID}, nil)
	f.containers.On("MarkUrged", mock.Anything, id, fixedNow).Return(domain.ErrContainerNotFound)

	_, err := f.svc.Urge(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrContainerNotFound)
	f.email.AssertNotCalled(t, "SendUrgeNotice", mock.Anything, mock.Anything, mock.Anything)
}

func TestContainerService_Urge_EmailFailureIsNotFatal(t *testing.T) {
	f := newContainerFixture("depot@example.com")
	id, vesselID := uuid.New(), uuid.New()
	c := &domain.Container{ID: id, VesselID: vesselID}

	f.containers.On("GetByID", mock.Anything, id).Return(c, nil)
	f.vessels.On("GetByID", mock.Anything, vesselID).Return(&domain.Vessel{ID: vesselID}, nil)
	f.containers.On("MarkUrged", mock.Anything, id, fixedNow).Return(nil)
	f.email.On("SendUrgeNotice", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses down"))

	_, err := f.svc.Urge(context.Background(), id)
	assert.NoError(t, err)
}

func TestContainerService_ClassifyDetention(t *testing.T) {
	f := newContainerFixture("")

	assert.Equal(t, domain.DetentionUrgent, f.svc.ClassifyDetention("2025-04-11"))
	assert.Equal(t, domain.DetentionWarning, f.svc.ClassifyDetention("14/04/2025"))
	assert.Equal(t, domain.DetentionSafe, f.svc.ClassifyDetention("2025-05-01"))
	assert.Equal(t, domain.DetentionSafe, f.svc.ClassifyDetention("not a date"))
}
