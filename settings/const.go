package settings

import (
	"time"
)

const (
	LOOP_DELAY = 1 * time.Second // GPS ticks arrive at roughly 1 Hz
	MS_TO_KPH  = 3.6
)
