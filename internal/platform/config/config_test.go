package config

import (
	"testing"
	"time"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "2500", cfg.UnitPrice.String())
	assert.Equal(t, "2000", cfg.MinBalanceForLoan.String())
	assert.Equal(t, domain.RepaymentAccumulate, cfg.RepaymentPolicy)
	assert.Equal(t, portssvc.HistoryBestEffort, cfg.HistoryMode)
	assert.Equal(t, 5*time.Second, cfg.DBStatementTimeout)
	assert.Equal(t, "ledger_events", cfg.AMQPExchange)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.SeedMembers)
}

func TestLoadConfig_Overrides(t *testing.T) {
	resetViper(t)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("UNIT_PRICE", "1000")
	t.Setenv("REPAYMENT_RECORD_POLICY", "PER_PAYMENT")
	t.Setenv("HISTORY_MODE", "transactional")
	t.Setenv("SEED_MEMBERS", "adm_1:admin, mem_1 ,mem_2:member")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "1000", cfg.UnitPrice.String())
	assert.Equal(t, domain.RepaymentPerPayment, cfg.RepaymentPolicy)
	assert.Equal(t, portssvc.HistoryTransactional, cfg.HistoryMode)
	require.Len(t, cfg.SeedMembers, 3)
	assert.Equal(t, domain.Member{MemberID: "adm_1", Role: domain.RoleAdmin, Status: domain.MemberActive}, cfg.SeedMembers[0])
	assert.Equal(t, domain.RoleMember, cfg.SeedMembers[1].Role)
	assert.Equal(t, "mem_1", cfg.SeedMembers[1].MemberID)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "storage driver", key: "STORAGE_DRIVER", val: "sqlite"},
		{name: "unit price", key: "UNIT_PRICE", val: "-5"},
		{name: "fractional unit price", key: "UNIT_PRICE", val: "2500.5"},
		{name: "min balance", key: "MIN_BALANCE_FOR_LOAN", val: "lots"},
		{name: "repayment policy", key: "REPAYMENT_RECORD_POLICY", val: "sometimes"},
		{name: "history mode", key: "HISTORY_MODE", val: "never"},
		{name: "seed role", key: "SEED_MEMBERS", val: "mem_1:owner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("STORAGE_DRIVER", "memory")
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
