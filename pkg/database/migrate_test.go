package database

import (
	"io/fs"
	"strings"
	"testing"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	b, err := fs.ReadFile(migrationsFS, "migrations/"+name)
	if err != nil {
		t.Fatalf("读取内嵌迁移 %s 失败: %v", name, err)
	}
	return string(b)
}

func TestMigrations_UpDownPaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("读取内嵌迁移目录失败: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("迁移文件命名不符合 golang-migrate 约定: %s", name)
		}
	}

	for base := range ups {
		if !downs[base] {
			t.Errorf("迁移 %s 缺少对应的 down 脚本", base)
		}
	}
	for base := range downs {
		if !ups[base] {
			t.Errorf("迁移 %s 缺少对应的 up 脚本", base)
		}
	}
}

func TestMigrations_ScheduleTeacherDenormalizationSynced(t *testing.T) {
	up := readMigration(t, "0002_schedule_overlap_guard.up.sql")

	// 冗余列的两条同步链路缺一不可：
	// 时段换课程时从课程取教师，课程换教师时反向刷新名下时段
	if !strings.Contains(up, "UPDATE OF course_id ON schedules") {
		t.Error("缺少时段侧的 teacher_id 同步触发器")
	}
	if !strings.Contains(up, "UPDATE OF teacher_id ON courses") {
		t.Error("缺少课程侧的 teacher_id 同步触发器")
	}
	if !strings.Contains(up, "UPDATE schedules SET teacher_id = NEW.teacher_id WHERE course_id = NEW.id") {
		t.Error("课程侧触发器应把新教师刷到该课程的全部时段")
	}

	down := readMigration(t, "0002_schedule_overlap_guard.down.sql")
	for _, obj := range []string{
		"trg_sync_schedule_teacher",
		"trg_sync_course_teacher",
		"sync_schedule_teacher",
		"sync_course_teacher",
	} {
		if !strings.Contains(down, obj) {
			t.Errorf("down 脚本应清理 %s", obj)
		}
	}
}
