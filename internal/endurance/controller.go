// Package endurance implements the thermal/battery hysteresis controller
// that re-shapes the Engine's transcription strategy under thermal stress.
package endurance

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/tphakala/lecturenotes/internal/conf"
	"github.com/tphakala/lecturenotes/internal/logging"
)

// Mode is the endurance operating mode.
type Mode int

const (
	// HighPerformance streams transcription continuously. Initial mode.
	HighPerformance Mode = iota
	// Endurance batches transcription at checkpoint intervals instead.
	Endurance
)

func (m Mode) String() string {
	if m == Endurance {
		return "Endurance"
	}
	return "HighPerformance"
}

// Controller samples CPU and battery temperature and exposes the current
// Mode with hysteresis: transition up on CPU > CPUHighCelsius or battery >
// BatteryHighCelsius; transition down only once both CPU < CPULowCelsius
// and battery < BatteryLowCelsius.
type Controller struct {
	mu          sync.Mutex
	mode        Mode
	batteryTemp float64
	simulated   bool
	logger      *slog.Logger
}

// NewController returns a Controller starting in HighPerformance mode.
func NewController() *Controller {
	return &Controller{
		mode:   HighPerformance,
		logger: logging.ForService("endurance"),
	}
}

// UpdateBatteryTemp records the latest host-pushed battery temperature.
func (c *Controller) UpdateBatteryTemp(temp float64) {
	c.mu.Lock()
	c.batteryTemp = temp
	c.mu.Unlock()
}

// CheckStatus re-evaluates the mode against the platform thermal source
// and the most recently pushed battery temperature, logs any transition,
// and returns the current mode. If a simulated environment is active (see
// SimulateEnvironment), the real thermal source is not consulted and the
// mode is returned unchanged.
func (c *Controller) CheckStatus() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.simulated {
		return c.mode
	}

	cpuTemp, haveCPU := readThermalZone()
	c.evaluate(cpuTemp, haveCPU, c.batteryTemp)
	return c.mode
}

// SimulateEnvironment is a test hook: it applies the hysteresis rules
// directly against the given readings, bypassing the platform thermal
// source, and marks the controller simulated so subsequent CheckStatus
// calls report the simulated mode unchanged.
func (c *Controller) SimulateEnvironment(batteryTemp, cpuTemp float64) Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.simulated = true
	c.batteryTemp = batteryTemp
	c.evaluate(cpuTemp, true, batteryTemp)
	return c.mode
}

// evaluate applies the up/down hysteresis thresholds and logs a
// transition if the mode changed. Caller must hold mu. A missing CPU
// reading is treated permissively in both directions, since CPU
// temperature is an optional input (§3): only the battery condition gates
// the transition when no CPU reading is available.
func (c *Controller) evaluate(cpuTemp float64, haveCPU bool, batteryTemp float64) {
	thresholds := conf.Setting().Endurance
	prev := c.mode

	switch c.mode {
	case HighPerformance:
		if (haveCPU && cpuTemp > thresholds.CPUHighCelsius) || batteryTemp > thresholds.BatteryHighCelsius {
			c.mode = Endurance
		}
	case Endurance:
		cpuCool := !haveCPU || cpuTemp < thresholds.CPULowCelsius
		if cpuCool && batteryTemp < thresholds.BatteryLowCelsius {
			c.mode = HighPerformance
		}
	}

	if c.mode != prev {
		c.logger.Info("endurance mode transition",
			"from", prev, "to", c.mode, "cpu_temp", cpuTemp, "have_cpu", haveCPU, "battery_temp", batteryTemp)
	}
}

// readThermalZone reads the integer-millidegree thermal source at
// conf.ThermalZonePath. Absence is non-fatal: it simply means no CPU
// reading is available this cycle.
func readThermalZone() (celsius float64, ok bool) {
	data, err := os.ReadFile(conf.ThermalZonePath)
	if err != nil {
		return 0, false
	}
	milli, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return float64(milli) / 1000.0, true
}
