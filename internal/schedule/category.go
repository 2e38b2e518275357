package schedule

import "strings"

// Category buckets a step's free-text description for display coloring.
type Category string

const (
	CategoryPrep    Category = "prep"
	CategoryProduce Category = "produce"
	CategoryPack    Category = "pack"
	CategoryClean   Category = "clean"
)

// Keyword lists are checked in fixed priority order: pack, clean, produce,
// prep. Changing the order changes which bucket wins for descriptions that
// mention several activities.
var (
	packKeywords = []string{"แพค", "แพ็ค", "แวค", "ใส่ถุง", "บรรจุ", "ซีล", "ติดสติ๊กเกอร์"}

	cleanKeywords = []string{"ล้าง", "ทำความสะอาด", "sanitize", "เก็บล้าง"}

	produceKeywords = []string{"หั่น", "ปรุง", "ผัด", "ทอด", "ต้ม", "อบ", "บด", "คั่ว"}

	prepKeywords = []string{"รับวัตถุดิบ", "เตรียม", "คัด", "หมัก", "ชั่ง", "ตวง", "ละลาย"}
)

// ClassifyStep assigns a category by substring keyword matching on the
// lower-cased description. Best effort only; unmatched text falls back to
// produce.
func ClassifyStep(description string) Category {
	d := strings.ToLower(description)

	if containsAny(d, packKeywords) {
		return CategoryPack
	}
	if containsAny(d, cleanKeywords) {
		return CategoryClean
	}
	if containsAny(d, produceKeywords) {
		return CategoryProduce
	}
	if containsAny(d, prepKeywords) {
		return CategoryPrep
	}

	return CategoryProduce
}

// StepFill returns the fill color for one step bar. Only pack and clean
// override the plan's palette color, with gray shades.
func StepFill(description, baseColor string) string {
	switch ClassifyStep(description) {
	case CategoryPack:
		return PackFill
	case CategoryClean:
		return CleanFill
	default:
		return baseColor
	}
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
