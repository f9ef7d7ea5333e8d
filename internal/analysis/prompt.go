package analysis

// Prompt templates. Both demand a pure JSON object; the provider still
// wraps the response in markdown fences often enough that StripFences
// runs on every response.

const signalSchema = `{"action": "BUY|SELL|HOLD", "confidence": 1-10, "entry_price": "price or range", "target_price": "price", "stop_loss": "price", "price_prediction": "range", "key_factors": ["factor1", "factor2"], "risk_level": "LOW|MEDIUM|HIGH", "sentiment_score": 1-100, "volume_impact": "LOW|MEDIUM|HIGH", "timeframe_reasoning": "brief reasoning"}`

const legacyPromptTemplate = `You are a crypto trading advisor. Analyze the news and provide trading signals in JSON format ONLY (no markdown, no code blocks):

{
  "15min_analysis": ` + signalSchema + `,
  "1h_analysis": ` + signalSchema + `,
  "4h_analysis": ` + signalSchema + `,
  "1day_analysis": ` + signalSchema + `,
  "overall_summary": "Brief reasoning",
  "risk_warning": "Key risks"
}

Return ONLY the JSON object, no markdown formatting. Analyze this crypto news:`

const extendedPromptTemplate = `You are a crypto trading advisor. Identify every cryptocurrency mentioned in or affected by the news, then provide trading signals in JSON format ONLY (no markdown, no code blocks):

{
  "identified_tokens": [{"symbol": "BTC", "name": "Bitcoin", "mentioned_in_news": true, "current_price_estimate": "$65,000"}],
  "token_analysis": {"BTC": {"15min_analysis": ` + signalSchema + `, "1h_analysis": {...}, "4h_analysis": {...}, "1day_analysis": {...}}},
  "overall_market_analysis": {"15min_analysis": {...}, "1h_analysis": {...}, "4h_analysis": {...}, "1day_analysis": {...}},
  "top_recommendations": [{"token": "BTC", "timeframe": "1h", "action": "BUY", "reason": "brief reason", "priority": 1}],
  "overall_summary": "Brief reasoning",
  "risk_warning": "Key risks"
}

Return ONLY the JSON object, no markdown formatting. Analyze this crypto news:`

// BuildPrompt concatenates the instruction template for mode with the
// article content.
func BuildPrompt(mode, content string) string {
	template := legacyPromptTemplate
	if mode == "extended" {
		template = extendedPromptTemplate
	}
	return template + "\n\n" + content
}
