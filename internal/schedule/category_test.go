package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStep(t *testing.T) {
	cases := []struct {
		description string
		want        Category
	}{
		{"แพ็คใส่ถุง 1 กก.", CategoryPack},
		{"บรรจุและซีลปากถุง", CategoryPack},
		{"ติดสติ๊กเกอร์", CategoryPack},
		{"ล้างอุปกรณ์", CategoryClean},
		{"ทำความสะอาดห้องผลิต", CategoryClean},
		{"Sanitize เครื่องมือ", CategoryClean},
		{"หั่นผัก", CategoryProduce},
		{"ทอดจนเหลืองกรอบ", CategoryProduce},
		{"ต้มน้ำซุป", CategoryProduce},
		{"รับวัตถุดิบจากคลัง", CategoryPrep},
		{"เตรียมเครื่องปรุง", CategoryProduce}, // ปรุง wins: produce checked before prep
		{"ชั่งตวงส่วนผสม", CategoryPrep},
		{"", CategoryProduce},
		{"no keyword here", CategoryProduce},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyStep(tc.description), "description=%q", tc.description)
	}
}

func TestClassifyStep_PackHasPriorityOverClean(t *testing.T) {
	// A description mentioning both packing and washing buckets as pack.
	assert.Equal(t, CategoryPack, ClassifyStep("บรรจุ แล้วเก็บล้าง"))
}

func TestStepFill_OnlyPackAndCleanOverrideBaseColor(t *testing.T) {
	base := "3B82F6"

	assert.Equal(t, PackFill, StepFill("แพคใส่กล่อง", base))
	assert.Equal(t, CleanFill, StepFill("ล้างเครื่อง", base))
	assert.Equal(t, base, StepFill("ทอด", base))
	assert.Equal(t, base, StepFill("เตรียมวัตถุดิบ", base))
	assert.Equal(t, base, StepFill("อะไรก็ได้", base))
}
