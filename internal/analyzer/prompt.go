package analyzer

// extractionPrompt is the fixed instruction sent with every frame. The icon
// rule matters: live commerce overlays show the viewer count next to a
// people icon and the like count next to a heart icon, and models routinely
// swap the two without it.
const extractionPrompt = `You are analyzing a screenshot of a live shopping stream. Extract engagement metrics and comments from the overlay UI.

IMPORTANT: the viewer count and the like count are two different numbers shown with different icons. The viewer count appears next to a people/person icon. The like count appears next to a heart icon. Do not confuse them.

Respond with a single JSON object containing exactly these keys and nothing else:
- "viewer_count": integer, current number of viewers (people icon)
- "likes_count": integer, current number of likes (heart icon)
- "sentiment_label": "positive", "negative" or "neutral" — overall sentiment of the visible comments
- "sentiment_score": number between -1.0 and 1.0
- "raw_comments": array of every comment string visible on screen, in order
- "shade_matching_comments": comments asking about shade or color matching
- "product_confusion_comments": comments showing confusion about the product
- "promotions_offers_comments": comments about promotions, discounts or offers
- "product_mentions": product names mentioned on screen or in comments
- "specific_concerns": specific concerns viewers raised
- "top_3_questions": up to three most important viewer questions
- "engagement_level": "low", "medium", "high" or "unknown"
- "age_group": apparent audience age group, or "unknown"
- "gender": apparent audience gender mix, or "unknown"
- "interests": apparent audience interests
- "locations": locations mentioned by viewers
- "sales_indicators": signs of purchase intent
- "recommendations": actionable recommendations for the host
- "strengths": what is working well in the stream
- "weaknesses": what is working poorly in the stream

Use "unknown" or empty arrays when something is not visible. Output only the JSON object, no prose.`
