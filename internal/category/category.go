// Package category holds the built-in category catalog and the user-defined
// categories that extend it at runtime.
package category

import (
	"strings"

	"github.com/openfma/fma/internal/plan"
)

// Definition describes one category. System categories resolve their display
// name through a translation key; user-defined categories store the display
// name directly in TranslationKey.
type Definition struct {
	ID             string    `json:"id"`
	Type           plan.Type `json:"type"`
	TranslationKey string    `json:"translationKey"`
	Icon           string    `json:"icon,omitempty"`
}

// Label returns the short label used when presenting a category to the
// categorizer: the last dot segment for system keys, the raw name otherwise.
func (d Definition) Label() string {
	if i := strings.LastIndex(d.TranslationKey, "."); i >= 0 {
		return d.TranslationKey[i+1:]
	}

	return d.TranslationKey
}

// IsSystem reports whether the definition is a built-in. Built-ins are
// immutable and never serialized into plan files.
func (d Definition) IsSystem() bool {
	return strings.HasPrefix(d.TranslationKey, "category.")
}

// Catalog merges the built-in catalog with the user's categories, split by
// type.
func Catalog(userCategories []Definition) (income, expense []Definition) {
	income = append(income, Income...)
	expense = append(expense, Expense...)

	for _, c := range userCategories {
		if c.Type == plan.TypeIncome {
			income = append(income, c)
		} else {
			expense = append(expense, c)
		}
	}

	return income, expense
}

// Income is the built-in income catalog.
var Income = []Definition{
	{ID: "cat_salary", Type: plan.TypeIncome, TranslationKey: "category.income.salary", Icon: "Wallet"},
	{ID: "cat_bonus", Type: plan.TypeIncome, TranslationKey: "category.income.bonus", Icon: "Zap"},
	{ID: "cat_commission", Type: plan.TypeIncome, TranslationKey: "category.income.commission", Icon: "Target"},
	{ID: "cat_tips", Type: plan.TypeIncome, TranslationKey: "category.income.tips", Icon: "Coins"},
	{ID: "cat_overtime", Type: plan.TypeIncome, TranslationKey: "category.income.overtime", Icon: "Clock"},
	{ID: "cat_part_time", Type: plan.TypeIncome, TranslationKey: "category.income.part_time", Icon: "Briefcase"},
	{ID: "cat_freelance", Type: plan.TypeIncome, TranslationKey: "category.income.freelance", Icon: "Laptop"},
	{ID: "cat_consulting", Type: plan.TypeIncome, TranslationKey: "category.income.consulting", Icon: "MessagesSquare"},
	{ID: "cat_contract", Type: plan.TypeIncome, TranslationKey: "category.income.contract", Icon: "FileSignature"},
	{ID: "cat_side_hustle", Type: plan.TypeIncome, TranslationKey: "category.income.side_hustle", Icon: "Rocket"},
	{ID: "cat_investment", Type: plan.TypeIncome, TranslationKey: "category.income.investment", Icon: "TrendingUp"},
	{ID: "cat_dividends", Type: plan.TypeIncome, TranslationKey: "category.income.dividends", Icon: "PieChart"},
	{ID: "cat_interest", Type: plan.TypeIncome, TranslationKey: "category.income.interest", Icon: "Percent"},
	{ID: "cat_crypto_inc", Type: plan.TypeIncome, TranslationKey: "category.income.crypto", Icon: "Bitcoin"},
	{ID: "cat_rental", Type: plan.TypeIncome, TranslationKey: "category.income.rental", Icon: "Home"},
	{ID: "cat_real_estate_flip", Type: plan.TypeIncome, TranslationKey: "category.income.real_estate_flip", Icon: "Building"},
	{ID: "cat_selling_assets", Type: plan.TypeIncome, TranslationKey: "category.income.selling_assets", Icon: "Tag"},
	{ID: "cat_sale", Type: plan.TypeIncome, TranslationKey: "category.income.sale", Icon: "ShoppingBag"},
	{ID: "cat_royalties", Type: plan.TypeIncome, TranslationKey: "category.income.royalties", Icon: "Music"},
	{ID: "cat_patent_license", Type: plan.TypeIncome, TranslationKey: "category.income.patent", Icon: "Stamp"},
	{ID: "cat_grants", Type: plan.TypeIncome, TranslationKey: "category.income.grants", Icon: "Award"},
	{ID: "cat_scholarship", Type: plan.TypeIncome, TranslationKey: "category.income.scholarship", Icon: "GraduationCap"},
	{ID: "cat_pension", Type: plan.TypeIncome, TranslationKey: "category.income.pension", Icon: "Umbrella"},
	{ID: "cat_social_security", Type: plan.TypeIncome, TranslationKey: "category.income.social_security", Icon: "ShieldCheck"},
	{ID: "cat_unemployment", Type: plan.TypeIncome, TranslationKey: "category.income.unemployment", Icon: "LifeBuoy"},
	{ID: "cat_benefits", Type: plan.TypeIncome, TranslationKey: "category.income.benefits", Icon: "HeartHandshake"},
	{ID: "cat_severance", Type: plan.TypeIncome, TranslationKey: "category.income.severance", Icon: "DoorOpen"},
	{ID: "cat_alimony_inc", Type: plan.TypeIncome, TranslationKey: "category.income.alimony", Icon: "Scale"},
	{ID: "cat_child_support_inc", Type: plan.TypeIncome, TranslationKey: "category.income.child_support", Icon: "Baby"},
	{ID: "cat_gift_inc", Type: plan.TypeIncome, TranslationKey: "category.income.gift", Icon: "Gift"},
	{ID: "cat_inheritance", Type: plan.TypeIncome, TranslationKey: "category.income.inheritance", Icon: "Scroll"},
	{ID: "cat_lottery", Type: plan.TypeIncome, TranslationKey: "category.income.lottery", Icon: "Ticket"},
	{ID: "cat_refunds", Type: plan.TypeIncome, TranslationKey: "category.income.refunds", Icon: "RefreshCcw"},
	{ID: "cat_cashback", Type: plan.TypeIncome, TranslationKey: "category.income.cashback", Icon: "CreditCard"},
	{ID: "cat_teaching", Type: plan.TypeIncome, TranslationKey: "category.income.teaching", Icon: "BookOpen"},
	{ID: "cat_content_creation", Type: plan.TypeIncome, TranslationKey: "category.income.content_creation", Icon: "Video"},
	{ID: "cat_ad_revenue", Type: plan.TypeIncome, TranslationKey: "category.income.ad_revenue", Icon: "Megaphone"},
	{ID: "cat_affiliate", Type: plan.TypeIncome, TranslationKey: "category.income.affiliate", Icon: "Link"},
	{ID: "cat_allowance_inc", Type: plan.TypeIncome, TranslationKey: "category.income.allowance", Icon: "PiggyBank"},
	{ID: "cat_other_inc", Type: plan.TypeIncome, TranslationKey: "category.income.other", Icon: "MoreHorizontal"},
}

// Expense is the built-in expense catalog.
var Expense = []Definition{
	{ID: "cat_rent", Type: plan.TypeExpense, TranslationKey: "category.expense.rent", Icon: "Home"},
	{ID: "cat_mortgage", Type: plan.TypeExpense, TranslationKey: "category.expense.mortgage", Icon: "Landmark"},
	{ID: "cat_property_tax", Type: plan.TypeExpense, TranslationKey: "category.expense.property_tax", Icon: "FileText"},
	{ID: "cat_home_ins", Type: plan.TypeExpense, TranslationKey: "category.expense.home_ins", Icon: "Shield"},
	{ID: "cat_home_maint", Type: plan.TypeExpense, TranslationKey: "category.expense.home_maint", Icon: "Hammer"},
	{ID: "cat_utilities", Type: plan.TypeExpense, TranslationKey: "category.expense.utilities", Icon: "Zap"},
	{ID: "cat_comm", Type: plan.TypeExpense, TranslationKey: "category.expense.comm", Icon: "Wifi"},
	{ID: "cat_household", Type: plan.TypeExpense, TranslationKey: "category.expense.household", Icon: "Package"},
	{ID: "cat_groceries", Type: plan.TypeExpense, TranslationKey: "category.expense.groceries", Icon: "ShoppingBasket"},
	{ID: "cat_dining", Type: plan.TypeExpense, TranslationKey: "category.expense.dining", Icon: "Utensils"},
	{ID: "cat_alcohol", Type: plan.TypeExpense, TranslationKey: "category.expense.alcohol", Icon: "Wine"},
	{ID: "cat_transport", Type: plan.TypeExpense, TranslationKey: "category.expense.transport", Icon: "Bus"},
	{ID: "cat_fuel", Type: plan.TypeExpense, TranslationKey: "category.expense.fuel", Icon: "Fuel"},
	{ID: "cat_car_payment", Type: plan.TypeExpense, TranslationKey: "category.expense.car_payment", Icon: "Car"},
	{ID: "cat_car_maint", Type: plan.TypeExpense, TranslationKey: "category.expense.car_maint", Icon: "Wrench"},
	{ID: "cat_parking", Type: plan.TypeExpense, TranslationKey: "category.expense.parking", Icon: "Square"},
	{ID: "cat_ins_car", Type: plan.TypeExpense, TranslationKey: "category.expense.ins_car", Icon: "ShieldCheck"},
	{ID: "cat_medical", Type: plan.TypeExpense, TranslationKey: "category.expense.medical", Icon: "Stethoscope"},
	{ID: "cat_dental", Type: plan.TypeExpense, TranslationKey: "category.expense.dental", Icon: "Smile"},
	{ID: "cat_pharmacy", Type: plan.TypeExpense, TranslationKey: "category.expense.pharmacy", Icon: "Pill"},
	{ID: "cat_ins_health", Type: plan.TypeExpense, TranslationKey: "category.expense.ins_health", Icon: "Activity"},
	{ID: "cat_fitness", Type: plan.TypeExpense, TranslationKey: "category.expense.fitness", Icon: "Dumbbell"},
	{ID: "cat_shopping", Type: plan.TypeExpense, TranslationKey: "category.expense.shopping", Icon: "ShoppingBag"},
	{ID: "cat_electronics", Type: plan.TypeExpense, TranslationKey: "category.expense.electronics", Icon: "Smartphone"},
	{ID: "cat_clothing", Type: plan.TypeExpense, TranslationKey: "category.expense.clothing", Icon: "Shirt"},
	{ID: "cat_beauty", Type: plan.TypeExpense, TranslationKey: "category.expense.beauty", Icon: "Sparkles"},
	{ID: "cat_education", Type: plan.TypeExpense, TranslationKey: "category.expense.education", Icon: "GraduationCap"},
	{ID: "cat_books", Type: plan.TypeExpense, TranslationKey: "category.expense.books", Icon: "Book"},
	{ID: "cat_subscriptions", Type: plan.TypeExpense, TranslationKey: "category.expense.subscriptions", Icon: "RefreshCw"},
	{ID: "cat_entertainment", Type: plan.TypeExpense, TranslationKey: "category.expense.entertainment", Icon: "Film"},
	{ID: "cat_travel", Type: plan.TypeExpense, TranslationKey: "category.expense.travel", Icon: "Plane"},
	{ID: "cat_hobbies", Type: plan.TypeExpense, TranslationKey: "category.expense.hobbies", Icon: "Palette"},
	{ID: "cat_pet", Type: plan.TypeExpense, TranslationKey: "category.expense.pet", Icon: "Dog"},
	{ID: "cat_childcare", Type: plan.TypeExpense, TranslationKey: "category.expense.childcare", Icon: "Baby"},
	{ID: "cat_debt", Type: plan.TypeExpense, TranslationKey: "category.expense.debt", Icon: "CreditCard"},
	{ID: "cat_student_loan", Type: plan.TypeExpense, TranslationKey: "category.expense.student_loan", Icon: "Scroll"},
	{ID: "cat_gift_exp", Type: plan.TypeExpense, TranslationKey: "category.expense.gift", Icon: "Gift"},
	{ID: "cat_donations", Type: plan.TypeExpense, TranslationKey: "category.expense.donations", Icon: "Heart"},
	{ID: "cat_legal", Type: plan.TypeExpense, TranslationKey: "category.expense.legal", Icon: "Gavel"},
	{ID: "cat_tax", Type: plan.TypeExpense, TranslationKey: "category.expense.tax", Icon: "FileText"},
}
