package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ricardofontes/goalvault/internal/ledger"
)

func TestService_Transfer(t *testing.T) {
	type args struct {
		from     string
		to       string
		currency string
		amount   int64
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{from: "user:a", to: ledger.AccountGoalManager, currency: "BRL", amount: 500},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					Transfer(gomock.Any(), "user:a", ledger.AccountGoalManager, "BRL", int64(500)).
					Return(nil)
			},
		},
		{
			name:    "ZeroAmount",
			args:    args{from: "user:a", to: "user:b", currency: "BRL", amount: 0},
			wantErr: ledger.ErrZeroAmount,
		},
		{
			name:    "NegativeAmount",
			args:    args{from: "user:a", to: "user:b", currency: "BRL", amount: -5},
			wantErr: ledger.ErrZeroAmount,
		},
		{
			name:    "SameAccount",
			args:    args{from: "user:a", to: "user:a", currency: "BRL", amount: 10},
			wantErr: ledger.ErrInvalidAccount,
		},
		{
			name:    "EmptyCurrency",
			args:    args{from: "user:a", to: "user:b", currency: "", amount: 10},
			wantErr: ledger.ErrInvalidAccount,
		},
		{
			name: "InsufficientFunds",
			args: args{from: "user:a", to: "user:b", currency: "BRL", amount: 10},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					Transfer(gomock.Any(), "user:a", "user:b", "BRL", int64(10)).
					Return(ledger.ErrInsufficientFunds)
			},
			wantErr: ledger.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			err := svc.Transfer(context.Background(), tt.args.from, tt.args.to, tt.args.currency, tt.args.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Mint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	t.Run("Success", func(t *testing.T) {
		repo.EXPECT().
			Mint(gomock.Any(), "user:a", "BRL", int64(100)).
			Return(nil)

		assert.NoError(t, svc.Mint(context.Background(), "user:a", "BRL", 100))
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		assert.ErrorIs(t, svc.Mint(context.Background(), "user:a", "BRL", 0), ledger.ErrZeroAmount)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo.EXPECT().
			Mint(gomock.Any(), "user:a", "BRL", int64(100)).
			Return(errors.New("db error"))

		assert.Error(t, svc.Mint(context.Background(), "user:a", "BRL", 100))
	})
}

func TestService_Balance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		Balance(gomock.Any(), "treasury", "BRL").
		Return(int64(42), nil)

	svc := ledger.NewService(repo)

	got, err := svc.Balance(context.Background(), "treasury", "BRL")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), got)
}
