// Package seed loads the demo dataset the dashboard ships with: a small
// camera directory, a few alarms in each lifecycle stage (including one
// mid-disposal and one fully resolved, with their linked work orders),
// open work orders of every category, and a day of plate captures.
package seed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis-api/internal/models"
	"github.com/aegisops/aegis-api/internal/repository"
	"github.com/aegisops/aegis-api/internal/timefmt"
)

type Repositories struct {
	Alarms   repository.AlarmRepository
	Issues   repository.IssueRepository
	Cameras  repository.CameraRepository
	Vehicles repository.VehicleRepository
}

func strptr(s string) *string { return &s }

// Load inserts the demo dataset. It assumes a freshly migrated store.
func Load(ctx context.Context, repos Repositories, logger zerolog.Logger) error {
	now := time.Now()
	today := timefmt.Stamp(now)[:10]
	yesterday := timefmt.Stamp(now.AddDate(0, 0, -1))[:10]

	cameras := []models.Camera{
		{ID: "1", Name: "主要入口大门", Location: "A区", Status: models.CameraStatusOnline, Type: "PTZ", Thumbnail: "https://picsum.photos/800/450?random=1", Longitude: 117.971185, Latitude: 28.44442},
		{ID: "2", Name: "B区停车场", Location: "B区", Status: models.CameraStatusOnline, Type: "PTZ", Thumbnail: "https://picsum.photos/800/450?random=2", Longitude: 117.975200, Latitude: 28.44650},
		{ID: "3", Name: "仓库通道", Location: "C区", Status: models.CameraStatusAlarm, Type: "PTZ", Thumbnail: "https://picsum.photos/800/450?random=3", Longitude: 117.968500, Latitude: 28.44300},
		{ID: "4", Name: "北侧围栏", Location: "D区", Status: models.CameraStatusOffline, Type: "PTZ", Thumbnail: "https://picsum.photos/800/450?random=4", Longitude: 117.972500, Latitude: 28.44100},
	}
	for _, camera := range cameras {
		if err := repos.Cameras.Add(ctx, camera); err != nil {
			return err
		}
	}

	// Alarms seed oldest-first so List (newest-first) shows a1 on top.
	alarms := []models.Alarm{
		{ID: "a3", Type: models.AlarmTypeVehicle, Title: "黑名单车辆", Timestamp: "08:30", CameraName: "主要入口大门", Status: models.AlarmStatusResolved, Description: "车牌号 赣E·88888 匹配布控名单。", SnapshotURL: "https://picsum.photos/300/200?random=12", RelatedIssueID: strptr("t_done_1")},
		{ID: "a2", Type: models.AlarmTypeFire, Title: "烟雾报警", Timestamp: "09:15", CameraName: "厨房区域", Status: models.AlarmStatusProcessing, Description: "烟雾探测器被触发，请核实。", SnapshotURL: "https://picsum.photos/300/200?random=11", RelatedIssueID: strptr("t2")},
		{ID: "a1", Type: models.AlarmTypeIntrusion, Title: "移动侦测报警", Timestamp: "10:42", CameraName: "仓库通道", Status: models.AlarmStatusPending, Description: "限制区域内检测到不明人员活动。", SnapshotURL: "https://picsum.photos/300/200?random=10"},
	}
	for _, alarm := range alarms {
		if _, err := repos.Alarms.Add(ctx, alarm); err != nil {
			return err
		}
	}

	issues := []models.Issue{
		{
			ID: "t_done_1", Title: "处理黑名单车辆告警", Priority: models.IssuePriorityHigh,
			DueDate: yesterday + " 09:00", Category: models.IssueCategoryAlarmReview,
			Status: models.IssueStatusDone, Description: "赣E·88888 车辆进入，请拦截。",
			Initiator: "系统", Assignee: "当前用户", RelatedAlarmID: strptr("a3"),
			CreatedAt: yesterday + " 08:30",
			Logs: []models.IssueLog{
				{ID: "l5", Action: models.LogActionCreate, Operator: "系统", Timestamp: yesterday + " 08:30", Content: "报警自动派单"},
				{ID: "l6", Action: models.LogActionClose, Operator: "当前用户", Timestamp: yesterday + " 08:45", Content: "已拦截并登记信息"},
			},
		},
		{
			ID: "t1", Title: "A区消防器材巡检", Priority: models.IssuePriorityMedium,
			DueDate: today + " 18:00", Category: models.IssueCategoryPatrol,
			Status: models.IssueStatusOpen, Description: "请对A区所有灭火器压力表进行检查，并拍照记录。",
			Initiator: "系统自动生成", Assignee: "当前用户", CreatedAt: today + " 08:00",
			Logs: []models.IssueLog{
				{ID: "l1", Action: models.LogActionCreate, Operator: "系统", Timestamp: today + " 08:00", Content: "自动触发每日巡检任务"},
			},
		},
		{
			ID: "t2", Title: "复核 #A2 烟雾报警", Priority: models.IssuePriorityHigh,
			DueDate: today + " 12:00", Category: models.IssueCategoryAlarmReview,
			Status: models.IssueStatusOpen, Description: "厨房区域检测到烟雾报警，请携带设备前往现场核实情况。",
			Initiator: "指挥中心", Assignee: "当前用户", RelatedAlarmID: strptr("a2"),
			CreatedAt: today + " 09:20",
			Logs: []models.IssueLog{
				{ID: "l2", Action: models.LogActionCreate, Operator: "指挥中心", Timestamp: today + " 09:15", Content: "报警触发，生成复核工单"},
				{ID: "l3", Action: models.LogActionAssign, Operator: "王队长", Timestamp: today + " 09:20", Content: "指派给当前用户处理"},
			},
		},
		{
			ID: "t3", Title: "维修 #4 号摄像机连接问题", Priority: models.IssuePriorityMedium,
			DueDate: today + " 17:00", Category: models.IssueCategoryIssue,
			Status: models.IssueStatusOpen, Description: "北侧围栏摄像头离线，请检查网络连接及供电情况。",
			Initiator: "当前用户", Assignee: "运维组", CreatedAt: today + " 10:00",
			Logs: []models.IssueLog{
				{ID: "l4", Action: models.LogActionCreate, Operator: "当前用户", Timestamp: today + " 10:00", Content: "发现设备离线，发起报修"},
			},
		},
		{
			ID: "t_fire_1", Title: "3号楼消防通道堵塞", Priority: models.IssuePriorityHigh,
			DueDate: today + " 16:00", Category: models.IssueCategoryFireSafety,
			Status: models.IssueStatusOpen, Description: "巡检发现3号楼东侧疏散通道堆放杂物，存在严重隐患，请立即清理。",
			Initiator: "巡更员-张三", Assignee: "物业部", CreatedAt: today + " 10:30",
			Logs: []models.IssueLog{
				{ID: "l_f1", Action: models.LogActionCreate, Operator: "巡更员-张三", Timestamp: today + " 10:30", Content: "巡检发现隐患上报"},
			},
		},
	}
	for _, issue := range issues {
		if _, err := repos.Issues.Add(ctx, issue); err != nil {
			return err
		}
	}

	vehicles := []models.VehicleRecord{
		{ID: "v3", Plate: "赣E·3X921", Color: "银灰", Type: "MPV", Timestamp: today + " 10:12:33", Location: "地下车库入口", ImageURL: "https://picsum.photos/400/300?random=23", IsWatchlisted: false, OwnerName: "王**", Speed: 12, Direction: "进入", Lane: 1, Confidence: 99.8},
		{ID: "v2", Plate: "赣E·F29102", Color: "白色", Type: "混动SUV", Timestamp: today + " 10:42:15", Location: "B号门出口", ImageURL: "https://picsum.photos/400/300?random=22", IsWatchlisted: false, OwnerName: "李**", Speed: 24, Direction: "由南向北", Lane: 2, Confidence: 98.5},
		{ID: "v1", Plate: "赣E·A8888", Color: "黑色", Type: "轿车", Timestamp: today + " 10:45:22", Location: "A号门进口", ImageURL: "https://picsum.photos/400/300?random=21", IsWatchlisted: true, OwnerName: "张** (重点关注)", Speed: 15, Direction: "由北向南", Lane: 1, Confidence: 99.2},
	}
	for _, vehicle := range vehicles {
		if err := repos.Vehicles.Add(ctx, vehicle); err != nil {
			return err
		}
	}

	logger.Info().
		Int("cameras", len(cameras)).
		Int("alarms", len(alarms)).
		Int("issues", len(issues)).
		Int("vehicles", len(vehicles)).
		Msg("demo data seeded")
	return nil
}
