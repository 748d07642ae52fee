package backup

import "time"

// SetNowForTest pins the engine clock so ids and timestamps are stable.
func (e *Engine) SetNowForTest(now func() time.Time) { e.now = now }
