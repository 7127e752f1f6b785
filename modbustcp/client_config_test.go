package modbustcp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-modbus/logger"
)

func TestNewClientConfig_Defaults(t *testing.T) {
	require := require.New(t)

	cfg, err := NewClientConfig("10.0.0.8:502")
	require.NoError(err)

	require.Equal("10.0.0.8:502", cfg.Address())
	require.Equal(uint8(1), cfg.UnitID())
	require.Equal(1*time.Second, cfg.Timeout())
	require.NotNil(cfg.Logger())
	require.Nil(cfg.Transport())
}

func TestNewClientConfig_BareHostGetsDefaultPort(t *testing.T) {
	require := require.New(t)

	cfg, err := NewClientConfig("10.0.0.8")
	require.NoError(err)
	require.Equal("10.0.0.8:502", cfg.Address())

	cfg, err = NewClientConfig("gas-detector.plant.local")
	require.NoError(err)
	require.Equal("gas-detector.plant.local:502", cfg.Address())
}

func TestNewClientConfig_EmptyAddress(t *testing.T) {
	_, err := NewClientConfig("")
	require.Error(t, err)
}

func TestNewClientConfig_Options(t *testing.T) {
	require := require.New(t)

	mockLogger := logger.GetLogger().With("test", true)

	cfg, err := NewClientConfig("10.0.0.8:1502",
		WithTimeout(250*time.Millisecond),
		WithUnitID(17),
		WithLogger(mockLogger),
	)
	require.NoError(err)

	require.Equal("10.0.0.8:1502", cfg.Address())
	require.Equal(250*time.Millisecond, cfg.Timeout())
	require.Equal(uint8(17), cfg.UnitID())
	require.Equal(mockLogger, cfg.Logger())
}

func TestNewClientConfig_OptionValidation(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		name string
		opt  ClientOption
	}{
		{name: "zero timeout", opt: WithTimeout(0)},
		{name: "negative timeout", opt: WithTimeout(-time.Second)},
		{name: "excessive timeout", opt: WithTimeout(121 * time.Second)},
		{name: "nil logger", opt: WithLogger(nil)},
		{name: "nil transport", opt: WithTransport(nil)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClientConfig("10.0.0.8:502", tc.opt)
			assert.Error(err)
		})
	}
}
