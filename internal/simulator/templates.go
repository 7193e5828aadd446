package simulator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/aegisops/aegis-api/internal/models"
	"github.com/aegisops/aegis-api/internal/timefmt"
)

type template struct {
	alarmType   models.AlarmType
	title       string
	cameraName  string
	description string
}

var fireTemplate = template{
	alarmType:   models.AlarmTypeFire,
	title:       "异常高温预警",
	cameraName:  "C区货运通道",
	description: "热成像监测到区域温度异常升高。",
}

var intrusionTemplate = template{
	alarmType:   models.AlarmTypeIntrusion,
	title:       "周界入侵报警",
	cameraName:  "北侧围栏",
	description: "周界感应器触发，检测到异常震动。",
}

// synthesize builds one fresh PENDING alarm from the weighted template
// set: roughly 30% fire, 70% intrusion.
func synthesize(rng *rand.Rand, now time.Time) models.Alarm {
	tpl := intrusionTemplate
	if rng.Float64() > 0.7 {
		tpl = fireTemplate
	}
	return models.Alarm{
		ID:          uuid.NewString(),
		Type:        tpl.alarmType,
		Title:       tpl.title,
		Timestamp:   timefmt.Clock(now),
		CameraName:  tpl.cameraName,
		Status:      models.AlarmStatusPending,
		Description: tpl.description,
		SnapshotURL: fmt.Sprintf("https://picsum.photos/300/200?random=%d", now.UnixMilli()),
	}
}
