package commands_test

import (
	"context"
	"testing"

	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/prescription"
	"pharmacy/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVerifyPrescriptionRepository struct{ mock.Mock }

func (m *MockVerifyPrescriptionRepository) Add(ctx context.Context, p *prescription.Prescription) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockVerifyPrescriptionRepository) Update(ctx context.Context, p *prescription.Prescription) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockVerifyPrescriptionRepository) Get(ctx context.Context, id kernel.UUID) (*prescription.Prescription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescription.Prescription), args.Error(1)
}

type MockVerifyUoW struct{ mock.Mock }

func (m *MockVerifyUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockVerifyUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockVerifyUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockVerifyUoW) PrescriptionRepository() ports.PrescriptionRepository {
	args := m.Called()
	return args.Get(0).(ports.PrescriptionRepository)
}

type MockVerifyUoWFactory struct{ mock.Mock }

func (m *MockVerifyUoWFactory) Create() commands.PrescriptionUoW {
	args := m.Called()
	return args.Get(0).(commands.PrescriptionUoW)
}

func newPendingPrescription(t *testing.T) *prescription.Prescription {
	t.Helper()
	rx, err := prescription.NewPrescription(kernel.NewUUID(), kernel.NewUUID(), "prescriptions/abc.jpg")
	require.NoError(t, err)
	return rx
}

func TestVerifyPrescriptionCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	rx := newPendingPrescription(t)
	verifierID := kernel.NewUUID()
	cmd, err := commands.NewVerifyPrescriptionCommand(rx.ID(), verifierID, true, "")
	require.NoError(t, err)

	repo := new(MockVerifyPrescriptionRepository)
	uow := new(MockVerifyUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PrescriptionRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, rx.ID()).Return(rx, nil).Once(),
		repo.On("Update", mock.Anything, rx).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockVerifyUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyPrescriptionCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, prescription.Verified, rx.Status())
	require.NotNil(t, rx.VerifierID())
	require.True(t, rx.VerifierID().IsEqual(verifierID))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestVerifyPrescriptionCommandHandler_Handle_Reject(t *testing.T) {
	ctx := t.Context()
	rx := newPendingPrescription(t)
	cmd, err := commands.NewVerifyPrescriptionCommand(rx.ID(), kernel.NewUUID(), false, "image is illegible")
	require.NoError(t, err)

	repo := new(MockVerifyPrescriptionRepository)
	uow := new(MockVerifyUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PrescriptionRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, rx.ID()).Return(rx, nil).Once()
	repo.On("Update", mock.Anything, rx).Return(nil).Once()

	factory := new(MockVerifyUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyPrescriptionCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, prescription.Rejected, rx.Status())
	require.Equal(t, "image is illegible", rx.RejectionReason())
}

func TestVerifyPrescriptionCommandHandler_Handle_AlreadyFinalized(t *testing.T) {
	ctx := t.Context()
	rx := newPendingPrescription(t)
	require.NoError(t, rx.Verify(kernel.NewUUID()))
	cmd, err := commands.NewVerifyPrescriptionCommand(rx.ID(), kernel.NewUUID(), false, "changed my mind")
	require.NoError(t, err)

	repo := new(MockVerifyPrescriptionRepository)
	uow := new(MockVerifyUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PrescriptionRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, rx.ID()).Return(rx, nil).Once()

	factory := new(MockVerifyUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyPrescriptionCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, prescription.ErrAlreadyFinalized)
	uow.AssertExpectations(t)
}

func TestUploadPrescriptionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUploadPrescriptionCommand(kernel.NewUUID(), kernel.NewUUID(), "prescriptions/new.jpg")
	require.NoError(t, err)

	repo := new(MockVerifyPrescriptionRepository)
	uow := new(MockVerifyUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PrescriptionRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(p *prescription.Prescription) bool {
			return p.Status() == prescription.PendingVerification && p.ID().IsEqual(cmd.PrescriptionID())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockVerifyUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUploadPrescriptionCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
