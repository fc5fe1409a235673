package allocation

import "github.com/wetalkinmedia/PocketWatcha2/internal/demographic"

// baseTables are the starting splits per living situation. Each sums to 100.
var baseTables = map[demographic.LivingSituation]map[Category]float64{
	demographic.Student: {
		Housing: 30, Food: 15, Transportation: 10, Healthcare: 5, Savings: 5,
		Debt: 5, Education: 15, Childcare: 0, Entertainment: 10, Other: 5,
	},
	demographic.Single: {
		Housing: 30, Food: 12, Transportation: 10, Healthcare: 5, Savings: 15,
		Debt: 10, Education: 3, Childcare: 0, Entertainment: 10, Other: 5,
	},
	demographic.Couple: {
		Housing: 32, Food: 14, Transportation: 10, Healthcare: 6, Savings: 15,
		Debt: 8, Education: 2, Childcare: 0, Entertainment: 8, Other: 5,
	},
	demographic.Family: {
		Housing: 30, Food: 16, Transportation: 10, Healthcare: 7, Savings: 10,
		Debt: 6, Education: 4, Childcare: 10, Entertainment: 4, Other: 3,
	},
	demographic.Retiree: {
		Housing: 30, Food: 14, Transportation: 8, Healthcare: 15, Savings: 8,
		Debt: 3, Education: 0, Childcare: 0, Entertainment: 12, Other: 10,
	},
}

// ageDeltas adjust a base table for life stage. Each sums to zero.
var ageDeltas = map[demographic.AgeGroup]map[Category]float64{
	demographic.Age18To25: {Savings: -2, Debt: -1, Entertainment: 2, Education: 1},
	demographic.Age26To35: {Savings: 1, Debt: 1, Entertainment: -1, Other: -1},
	demographic.Age36To45: {Savings: 2, Healthcare: 1, Entertainment: -2, Other: -1},
	demographic.Age46To55: {Savings: 3, Healthcare: 2, Debt: -1, Entertainment: -2, Other: -2},
	demographic.Age56Plus: {Healthcare: 4, Savings: 1, Debt: -2, Entertainment: -1, Education: -2},
}
