package ai

import "strings"

const planSystemPrompt = `You are a personal finance planning assistant.
Build a yearly financial plan for the year {TARGET_YEAR} from the user's request below.

Respond with ONLY an XML document in exactly this shape, no commentary:

<?xml version="1.0" encoding="UTF-8"?>
<FinancialManagementApp version="1.0">
  <PlanItems>
    <Item>
      <Id>unique lowercase alphanumeric id</Id>
      <Type>Income or Expense</Type>
      <Name>short item name</Name>
      <Amount>positive number</Amount>
      <Recurring>true or false</Recurring>
      <RecurringType>forever or until_date, only when Recurring is true</RecurringType>
      <MonthIndex>0-11</MonthIndex>
      <Year>{TARGET_YEAR}</Year>
      <SeriesId>shared id for recurring items, only when Recurring is true</SeriesId>
    </Item>
  </PlanItems>
</FinancialManagementApp>

Rules:
- For a recurring item emit only its first occurrence and set Recurring, RecurringType and SeriesId.
- Amounts are plain numbers without separators or currency symbols.
- Use realistic amounts when the user gives none.

User request: {USER_PROMPT_INPUT}`

const categorizeSystemPrompt = `You assign finance categories to plan items.

Items, one per line:
{PLAN_DATA}

Income category ids (only for income items):
{INCOME_ONLY_CATEGORIES}

Expense category ids (only for expense items):
{EXPENSE_ONLY_CATEGORIES}

Respond with ONLY a JSON object in exactly this shape, no commentary:
{"mapping": [{"value": "item line exactly as given", "categories": ["category id"]}]}

Rules:
- Every item line appears exactly once in the mapping.
- Use only category ids from the lists above; one or two per item.`

// stripFences removes markdown code fences models like to wrap answers in.
func stripFences(s string) string {
	for _, fence := range []string{"```xml", "```json", "```"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	return strings.TrimSpace(s)
}
