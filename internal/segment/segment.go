package segment

import (
	"math"
	"sort"
	"time"

	"babajina/internal/model"
)

// neutralScore 客户数不足以划分五分位时的兜底分
const neutralScore = 3

// Compute 计算每个客户的 RFM 值与分群
// asOf 为零值时取销售数据中的最大日期；没有客户号的记录不参与，
// 全部记录都没有客户号时返回空结果
func Compute(sales []model.SalesRecord, asOf time.Time) []model.CustomerRFM {
	type accum struct {
		lastDate time.Time
		days     map[time.Time]bool
		monetary float64
	}

	byCustomer := make(map[string]*accum)
	var maxDate time.Time
	for _, r := range sales {
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
		if r.CustomerID == "" {
			continue
		}

		a := byCustomer[r.CustomerID]
		if a == nil {
			a = &accum{days: make(map[time.Time]bool)}
			byCustomer[r.CustomerID] = a
		}
		if r.Date.After(a.lastDate) {
			a.lastDate = r.Date
		}
		a.days[r.Date] = true
		a.monetary += r.Revenue
	}

	if len(byCustomer) == 0 {
		return nil
	}
	if asOf.IsZero() {
		asOf = maxDate
	}

	ids := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]model.CustomerRFM, len(ids))
	recency := make([]float64, len(ids))
	frequency := make([]float64, len(ids))
	monetary := make([]float64, len(ids))
	for i, id := range ids {
		a := byCustomer[id]
		days := int(asOf.Sub(a.lastDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		rows[i] = model.CustomerRFM{
			CustomerID:  id,
			RecencyDays: days,
			Frequency:   len(a.days),
			Monetary:    a.monetary,
		}
		recency[i] = float64(days)
		frequency[i] = float64(len(a.days))
		monetary[i] = float64(a.monetary)
	}

	rScores := quintileScores(recency)
	fScores := quintileScores(frequency)
	mScores := quintileScores(monetary)

	for i := range rows {
		// 天数越小越好，方向取反
		rows[i].RScore = invertScore(rScores[i])
		rows[i].FScore = fScores[i]
		rows[i].MScore = mScores[i]
		rows[i].Segment = classify(rows[i].RScore, rows[i].FScore)
	}
	return rows
}

// quintileScores 按值升序的五分位打分（1 最差，5 最好）
// 不足 5 个不同取值时统一给中性分，避免边界未定义
func quintileScores(values []float64) []int {
	scores := make([]int, len(values))

	distinct := make(map[float64]bool, len(values))
	for _, v := range values {
		distinct[v] = true
	}
	if len(distinct) < 5 {
		for i := range scores {
			scores[i] = neutralScore
		}
		return scores
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	thresholds := make([]float64, 4)
	for k := 1; k <= 4; k++ {
		idx := int(math.Ceil(float64(n*k)/5)) - 1
		thresholds[k-1] = sorted[idx]
	}

	for i, v := range values {
		score := 1
		for _, t := range thresholds {
			if v > t {
				score++
			}
		}
		scores[i] = score
	}
	return scores
}

// invertScore 五分位分数方向取反
func invertScore(score int) int {
	return 6 - score
}

// classify 按 (R, F) 查表分群。规则按序匹配，保证任意组合都有归属
func classify(r, f int) model.Segment {
	switch {
	case r >= 4 && f >= 4:
		return model.SegmentChampions
	case r >= 3 && f >= 3:
		return model.SegmentLoyal
	case r >= 4:
		return model.SegmentRecent
	case f >= 4:
		return model.SegmentAtRisk
	case r <= 2 && f <= 2:
		return model.SegmentHibernating
	default:
		return model.SegmentPromising
	}
}

// segmentOrder 分群的固定展示顺序
var segmentOrder = []model.Segment{
	model.SegmentChampions,
	model.SegmentLoyal,
	model.SegmentRecent,
	model.SegmentAtRisk,
	model.SegmentPromising,
	model.SegmentHibernating,
}

// Counts 分群人数汇总（固定顺序，人数为 0 的分群不产生行）
func Counts(rows []model.CustomerRFM) []model.SegmentCount {
	counts := make(map[model.Segment]int)
	for _, r := range rows {
		counts[r.Segment]++
	}

	var result []model.SegmentCount
	for _, s := range segmentOrder {
		if counts[s] > 0 {
			result = append(result, model.SegmentCount{Segment: s, Count: counts[s]})
		}
	}
	return result
}
