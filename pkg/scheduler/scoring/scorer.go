// Package scoring 提供软约束加权评分器
package scoring

import (
	"github.com/zhiban/zhiban/pkg/model"
	"github.com/zhiban/zhiban/pkg/rules"
)

// 各评分项的基准系数。软约束权重来自注册表配置，
// 这里只定义各项之间的相对比例。
const (
	preferredBonus     = 2.0  // 偏好班次的加分系数
	avoidPenalty       = 3.0  // 避免班次的扣分系数
	loadFactor         = 2.0  // 负载均衡系数（每累计一班的扣分）
	desirabilityDamper = 0.1  // 受欢迎度均衡阻尼，防止该项压过其他项
)

// Scorer 公平性评分器：对 (人员, 班次, 当前排班进度) 计算
// 可比较的数值得分，越高越适合分配。纯函数，无副作用。
type Scorer struct {
	reg *rules.Registry
}

// NewScorer 创建评分器
func NewScorer(reg *rules.Registry) *Scorer {
	return &Scorer{reg: reg}
}

// Score 计算加权软约束得分
func (sc *Scorer) Score(p *model.Person, s *model.Shift, sched *model.Schedule) float64 {
	score := 0.0

	// 偏好项：偏好班次加分，声明避免的班次扣分
	honor := sc.reg.Soft.HonorShiftPreferences.Value()
	leave := sc.reg.Soft.RespectLeaveRequests.Value()
	if p.PrefersShift(s.TypeCode) {
		score += preferredBonus * honor
	}
	if p.AvoidsShift(s.TypeCode) {
		score -= avoidPenalty * (honor + leave) / 2
	}

	// 负载均衡项：累计班次越多越不优先
	score -= loadFactor * float64(sched.PersonShiftCount(p.ID))

	// 受欢迎度均衡项：将低受欢迎度班次（夜班/周末班）
	// 导向累计负担最少的人员
	if st, ok := sc.reg.ShiftType(s.TypeCode); ok && st.Desirability != 0 {
		w := sc.balanceWeight(st, s.Date)
		score -= w * desirabilityDamper * st.Desirability * sched.PersonDesirabilitySum(p.ID)
	}

	return score
}

// balanceWeight 选取受欢迎度均衡项的权重：
// 夜班取 balance_night_shifts，周末取 balance_weekend_shifts，
// 其余取两者均值
func (sc *Scorer) balanceWeight(st model.ShiftType, date string) float64 {
	night := sc.reg.Soft.BalanceNightShifts.Value()
	weekend := sc.reg.Soft.BalanceWeekendShifts.Value()

	switch {
	case st.IsNight():
		return night
	case model.IsWeekend(date):
		return weekend
	default:
		return (night + weekend) / 2
	}
}
