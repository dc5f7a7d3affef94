package scan

import (
	"fmt"
	"strings"
)

const receiptSchemaHint = `Return ONLY a JSON object with this exact shape:
{
  "store_name": "<store name>",
  "date": "<YYYY-MM-DD>",
  "total_amount": <number>,
  "items": [
    {"name": "<item name>", "price": <number>, "quantity": <number>, "category": "<category>"}
  ]
}`

// imagePrompt asks the vision model to read a receipt photo into the
// structured JSON shape the parser expects.
func imagePrompt(categories []string) string {
	var b strings.Builder
	b.WriteString("Analyze this receipt image and extract the purchase data.\n")
	b.WriteString("List every line item with its price and quantity.\n")
	writeCategoryHint(&b, categories)
	b.WriteString(receiptSchemaHint)
	return b.String()
}

// textPrompt asks the model to structure already-transcribed receipt text.
func textPrompt(receiptText string, categories []string) string {
	var b strings.Builder
	b.WriteString("Extract the purchase data from this receipt text:\n\n")
	b.WriteString(receiptText)
	b.WriteString("\n\n")
	writeCategoryHint(&b, categories)
	b.WriteString(receiptSchemaHint)
	return b.String()
}

// coercePrompt re-prompts with the model's own previous response, asking
// it to restate the data as valid JSON.
func coercePrompt(previousResponse string) string {
	return fmt.Sprintf(
		"The following receipt data is not valid JSON. Restate it as valid JSON only, no prose, no markdown fences.\n\n%s\n\n%s",
		previousResponse, receiptSchemaHint)
}

// categorizePrompt asks for one category per item in the line convention
// "- <item name>: <category>".
func categorizePrompt(itemNames, categories []string) string {
	var b strings.Builder
	b.WriteString("Assign each of these purchased items to exactly one category.\n")
	b.WriteString("Categories: ")
	b.WriteString(strings.Join(categories, ", "))
	b.WriteString("\nItems:\n")
	for _, name := range itemNames {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("Respond with one line per item in the form \"- <item name>: <category>\".")
	return b.String()
}

func writeCategoryHint(b *strings.Builder, categories []string) {
	if len(categories) == 0 {
		return
	}
	b.WriteString("Use only these categories for items: ")
	b.WriteString(strings.Join(categories, ", "))
	b.WriteString("\n")
}
