package analysis

// User-facing message templates. General pipeline messages are bilingual
// because they can be sent before a country (and with it a language) is
// known; the report itself follows the chosen country's language.

const (
	MsgChooseCountry = `🌍 اختر دولة جمهورك لتخصيص التوصيات:
Choose your audience country to tailor the recommendations:`

	MsgUsernameMissing = `✍️ أرسل اسم حساب TikTok بدون @ لتحليل الحساب.
Send a TikTok username (without @) to analyze the account.`

	MsgPayloadMalformed = `❌ زر غير صالح، ابدأ التحليل من جديد.
Invalid selection, please start the analysis again.`

	MsgFetchFailed = `❌ لم أتمكن من الوصول للحساب. لم يتم خصم أي محاولة.
Could not reach the account. No attempt was consumed.`

	MsgExtractionFailed = `❌ لم أتمكن من استخراج تفاصيل الحساب. لم يتم خصم أي محاولة.
Could not extract the account details. No attempt was consumed.`

	MsgQuotaWriteFailed = `❌ تعذر تسجيل المحاولة، حاول مرة أخرى.
Could not record this attempt, please try again.`

	QuotaExceededTemplate = `🔒 انتهت محاولاتك المجانية (%d).
Your free analyses (%d) are used up.`

	// VIPRemaining is the unbounded sentinel shown to allow-listed users.
	VIPRemaining = "∞"
)
