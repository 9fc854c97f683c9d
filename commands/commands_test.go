package commands_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/sbasm/commands"
)

var _ = Describe("Interval", func() {
	It("should contain its bounds", func() {
		iv := commands.Bounded(-3, 5)
		Expect(iv.Contains(-3)).To(BeTrue())
		Expect(iv.Contains(5)).To(BeTrue())
		Expect(iv.Contains(6)).To(BeFalse())
		Expect(iv.Contains(-4)).To(BeFalse())
	})

	It("should treat missing bounds as open", func() {
		Expect(commands.AtLeast(0).Contains(math.MaxInt32)).To(BeTrue())
		Expect(commands.AtMost(-1).Contains(math.MinInt32)).To(BeTrue())
		Expect(commands.AtMost(-1).Contains(0)).To(BeFalse())
	})

	It("should refuse an interval with no bounds", func() {
		_, ok := commands.NewInterval(nil, nil)
		Expect(ok).To(BeFalse())

		lo := int32(4)
		iv, ok := commands.NewInterval(&lo, nil)
		Expect(ok).To(BeTrue())
		Expect(iv).To(Equal(commands.AtLeast(4)))
	})

	It("should intersect", func() {
		iv := commands.AtLeast(0).Intersect(commands.AtMost(10))
		Expect(iv).To(Equal(commands.Bounded(0, 10)))

		iv = commands.Bounded(0, 10).Intersect(commands.Bounded(5, 20))
		Expect(iv).To(Equal(commands.Bounded(5, 10)))

		iv = commands.Bounded(0, 1).Intersect(commands.Bounded(5, 20))
		Expect(iv.IsEmpty()).To(BeTrue())
	})
})

var _ = Describe("Selector", func() {
	It("should render 1.8 selector syntax", func() {
		sel := commands.Selector{Kind: 'e', Name: "computer"}
		Expect(sel.String()).To(Equal("@e[name=computer]"))

		sel = sel.WithScore("r0", commands.Bounded(1, 1))
		Expect(sel.String()).To(Equal("@e[name=computer,score_r0_min=1,score_r0=1]"))

		sel = commands.Selector{Kind: 'e', Team: "Shifters", Count: 1}
		sel = sel.WithScore("t0", commands.AtLeast(0))
		sel = sel.WithScore("BitNumber", commands.AtMost(31))
		Expect(sel.String()).To(Equal("@e[team=Shifters,c=1,score_BitNumber=31,score_t0_min=0]"))

		Expect(commands.Entity().String()).To(Equal("@e"))
	})

	It("should not alias score maps", func() {
		base := commands.Entity().WithScore("a", commands.AtLeast(0))
		derived := base.WithScore("a", commands.AtMost(5))
		Expect(base.Scores["a"]).To(Equal(commands.AtLeast(0)))
		Expect(derived.Scores["a"]).To(Equal(commands.Bounded(0, 5)))
	})

	It("should parse its own rendering", func() {
		sel := commands.Selector{Kind: 'e', Name: "mem_0", Count: 1}
		sel = sel.WithScore("MemTag", commands.Bounded(3, 3))

		tgt, err := commands.ParseTarget(sel.String())
		Expect(err).NotTo(HaveOccurred())
		Expect(tgt).To(Equal(sel))
	})

	It("should parse players", func() {
		tgt, err := commands.ParseTarget("#accum")
		Expect(err).NotTo(HaveOccurred())
		Expect(tgt).To(Equal(commands.Player("#accum")))
	})

	It("should reject malformed targets", func() {
		for _, text := range []string{"", "@x", "@e[name]", "@e[c=z]", "@e[bogus=1]", "@e[name=a"} {
			_, err := commands.ParseTarget(text)
			Expect(err).To(MatchError(commands.ErrTargetInvalid), text)
		}
	})
})

var _ = Describe("PlayerOp", func() {
	DescribeTable("Apply",
		func(op commands.PlayerOp, lhs, rhs, out int32, ok bool) {
			got, gotOk := op.Apply(lhs, rhs)
			Expect(got).To(Equal(out))
			Expect(gotOk).To(Equal(ok))
		},
		Entry("add wraps", commands.OP_ADD, int32(math.MaxInt32), int32(1), int32(math.MinInt32), true),
		Entry("sub wraps", commands.OP_SUB, int32(math.MinInt32), int32(1), int32(math.MaxInt32), true),
		Entry("mul wraps", commands.OP_MUL, int32(1<<30), int32(4), int32(0), true),
		Entry("div truncates", commands.OP_DIV, int32(-7), int32(2), int32(-3), true),
		Entry("rem truncates", commands.OP_REM, int32(-7), int32(2), int32(-1), true),
		Entry("div by zero", commands.OP_DIV, int32(9), int32(0), int32(9), false),
		Entry("rem by zero", commands.OP_REM, int32(9), int32(0), int32(9), false),
		Entry("div overflow", commands.OP_DIV, int32(math.MinInt32), int32(-1), int32(math.MinInt32), true),
		Entry("min", commands.OP_MIN, int32(3), int32(-2), int32(-2), true),
		Entry("max", commands.OP_MAX, int32(3), int32(-2), int32(3), true),
	)

	It("should name its operators", func() {
		Expect(commands.OP_ASN.String()).To(Equal("="))
		Expect(commands.OP_REM.String()).To(Equal("%="))
		Expect(commands.OP_SWP.String()).To(Equal("><"))
		Expect(commands.PlayerOp(9).String()).To(Equal("PlayerOp(9)"))
	})
})

var _ = Describe("StatKind", func() {
	It("should parse its own names", func() {
		for _, sk := range []commands.StatKind{
			commands.STAT_SUCCESS_COUNT,
			commands.STAT_AFFECTED_BLOCKS,
			commands.STAT_AFFECTED_ENTITIES,
			commands.STAT_AFFECTED_ITEMS,
			commands.STAT_QUERY_RESULT,
		} {
			got, ok := commands.ParseStatKind(sk.String())
			Expect(ok).To(BeTrue(), sk.String())
			Expect(got).To(Equal(sk))
		}

		got, ok := commands.ParseStatKind("querYresult")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(commands.STAT_QUERY_RESULT))

		_, ok = commands.ParseStatKind("Bogus")
		Expect(ok).To(BeFalse())
		Expect(commands.StatKind(-1).String()).To(Equal("StatKind(-1)"))
		Expect(commands.STAT_AFFECTED_ITEMS.ObjectiveKey()).To(Equal("AffectedItemsObjective"))
	})
})

var _ = Describe("Command", func() {
	computer := commands.Selector{Kind: 'e', Name: "computer"}

	It("should render scoreboard commands", func() {
		Expect(commands.PlayersSet{Target: computer, Objective: "r0", Value: 5}.String()).
			To(Equal("scoreboard players set @e[name=computer] r0 5"))
		Expect(commands.PlayersRemove{Target: computer, Objective: "r0", Value: 5}.String()).
			To(Equal("scoreboard players remove @e[name=computer] r0 5"))
		Expect(commands.Operation(computer, "r0", commands.OP_REM, computer, "TWO").String()).
			To(Equal("scoreboard players operation @e[name=computer] r0 %= @e[name=computer] TWO"))
	})

	It("should render execute and fill", func() {
		cmd := commands.Execute{
			Target:  commands.Selector{Kind: 'e', Team: "Shifters"},
			Offset:  commands.RelZero,
			Command: commands.PlayersAdd{Target: commands.Player("x"), Objective: "y", Value: 1},
		}
		Expect(cmd.String()).To(Equal("execute @e[team=Shifters] ~ ~ ~ scoreboard players add x y 1"))

		fill := commands.Fill{Min: commands.Vec3{X: 1, Y: 2, Z: 3}, Max: commands.Vec3{X: 1, Y: 2, Z: 4}, Block: commands.BLOCK_AIR}
		Expect(fill.String()).To(Equal("fill 1 2 3 1 2 4 minecraft:air"))
	})

	It("should render block metadata", func() {
		blk := commands.Block{
			Command: commands.Raw("say hi"),
			Stats: []commands.Stat{
				{Kind: commands.STAT_SUCCESS_COUNT, Target: computer, Objective: "r3"},
			},
		}
		Expect(blk.NBT()).To(Equal(`{Command:"say hi",TrackOutput:0b,CommandStats:{SuccessCountName:"@e[name=computer]",SuccessCountObjective:"r3"}}`))

		blk.Stats = nil
		blk.TrackOutput = true
		Expect(blk.NBT()).To(Equal(`{Command:"say hi",TrackOutput:1b}`))
	})
})

var _ = Describe("Extent", func() {
	It("should be empty by default", func() {
		var e commands.Extent
		Expect(e.IsEmpty()).To(BeTrue())
		Expect(e.Contains(commands.Vec3{})).To(BeFalse())
	})

	It("should contain its box", func() {
		e := commands.MinMax(commands.Vec3{X: 0, Y: 0, Z: 0}, commands.Vec3{X: 2, Y: 0, Z: 2})
		Expect(e.Contains(commands.Vec3{X: 1, Y: 0, Z: 2})).To(BeTrue())
		Expect(e.Contains(commands.Vec3{X: 1, Y: 1, Z: 2})).To(BeFalse())
	})
})
