package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NormalizeColumnName 规范化列名：小写、去首尾空格、压缩内部空白
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	re := regexp.MustCompile(`\s+`)
	name = re.ReplaceAllString(name, " ")
	return name
}

// MatchPattern 使用正则匹配（整列名匹配）
func MatchPattern(text, pattern string) bool {
	re, err := regexp.Compile("^(" + pattern + ")$")
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ParseAmount 解析金额。返回 (值, 是否可解析)
// 空串视为 0（用于 数量×单价 的缺失因子兜底），非数字文本视为不可解析
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	s = strings.ReplaceAll(s, ",", "") // 千分位
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// dateLayouts 宽松日期格式（斜杠日期按 月/日/年 口径）
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z07:00",
}

// excelEpoch Excel 序列日期纪元（1900 日期系统）
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate 宽松解析日期。支持多种文本格式与 Excel 序列数
// 解析失败返回 ok=false，由调用方丢弃该行并计数
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	// Excel 序列数（excelize 对未格式化的日期单元格返回数字文本）
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 300000 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return t, true
	}

	return time.Time{}, false
}

// MonthStart 截断到所属月份第一天
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth 所属月份的天数
func DaysInMonth(t time.Time) int {
	return MonthStart(t).AddDate(0, 1, -1).Day()
}
