package telegram

// Static user-facing templates for the stateless command path. Bilingual like
// the pipeline's general messages; the report language follows the chosen
// country instead.

const WelcomeTemplate = `👋 <b>مرحبًا بك في TikScope!</b>

أرسل اسم حساب TikTok بدون @ لتحليل الحساب، ثم اختر دولة جمهورك.

<b>Welcome to TikScope!</b>
Send a TikTok username (without @) to analyze the account, then pick your audience country.

🎟 لديك %d محاولات مجانية / You have %d free analyses.

الأوامر / Commands: /analyze /usage /help`

const HelpTemplate = `📚 <b>TikScope Help</b>

• /analyze &lt;username&gt; — حلّل حسابًا / analyze an account
• /usage — محاولاتك المتبقية / your remaining attempts
• /help — هذه الرسالة / this message

أو أرسل اسم الحساب مباشرة بدون أمر.
Or just send the username directly, no command needed.

🎟 الحد المجاني / Free limit: %d`

const UsageTemplate = `📊 <b>الاستخدام / Usage</b>

✅ محاولات مستهلكة / Used: %d
🎟 محاولات متبقية / Remaining: %s`

const UnknownCommandMsg = `❓ أمر غير معروف، جرّب /help
Unknown command, try /help`
