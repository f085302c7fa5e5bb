package planner

import (
	"fmt"
	"strings"

	"tripcart/models"
)

// BuildPrompt merges the trip input and the guide excerpt into the
// instruction document sent to the generator. Pure transform, no side
// effects.
func BuildPrompt(info models.TravelInfo, guideExcerpt string) string {
	companions := "None"
	if len(info.Companions) > 0 {
		companions = strings.Join(info.Companions, ", ")
	}

	schedule := "Not specified"
	if len(info.Schedule) > 0 {
		var lines []string
		for _, s := range info.Schedule {
			lines = append(lines, fmt.Sprintf("      Day %d (%s): %s", s.Day, s.Date, s.Location))
		}
		schedule = strings.Join(lines, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a professional travel shopping planner for KOREAN travelers.
Create a detailed shopping plan for a trip to %s.

Travel Details:
- Duration: %s to %s
- Budget: %d KRW
- Companions: %s
- Interests: %s
- Purpose: %s
- Daily Schedule:
%s

%s

**LANGUAGE INSTRUCTION (CRITICAL)**:
- **ALL OUTPUT MUST BE IN KOREAN (한국어).**
- Product names, descriptions, reasons, tips, and shop names MUST be in Korean.
- Exception: You may keep the original English/Local brand name in parentheses if helpful (e.g., "말린 망고 (7D Dried Mangoes)").

**CRITICAL INSTRUCTION**:
Recommend REAL, POPULAR, and SPECIFIC items that travelers actually buy in %s.
- Focus on "Must-Buy" items, local specialties, and famous souvenirs.
- Avoid generic suggestions like "Chocolate" or "T-shirt". Instead, suggest specific brands or famous products.
- Consider the user's budget and interests.
- **BALANCED RECOMMENDATION STRATEGY (30:70 Rule)**:
  1. **Guide Recommendations (approx. 30%%)**: Select only the top 2-3 "Must-Buy" items from the provided guide data.
  2. **AI Recommendations (approx. 70%%)**: Fill the rest with UNIQUE, TRENDY, and PERSONALIZED items.
- **Avoid Repetition**: Do not just list everything from the guide. Curate strictly.

**PRICE INSTRUCTION**:
- You MUST estimate the price for every item. Do NOT return 0.
- `+"`localPrice`"+`: The price in local currency (e.g. JPY, THB). Use the guide data if available.
- `+"`estimatedPrice`"+`: The approximate price in KRW (Korean Won). Calculate based on current exchange rates.

**BUDGET COMPLIANCE (CRITICAL)**:
- **TOTAL BUDGET LIMIT**: The sum of all item prices MUST NOT exceed %d KRW.
- **Adjust Item Selection**: If the budget is low, do NOT recommend expensive luxury items. Focus on affordable souvenirs, snacks, and local crafts.
- **Quantity Control**: Do not recommend too many items if it breaks the budget. Prioritize quality over quantity.
- **Price Check**: Before finalizing the list, sum up the prices. If it exceeds %d KRW, remove the least important items.

**SOURCE ATTRIBUTION (STRICT)**:
- `+"`source`"+`: Set to "guide" **ONLY IF** the item is explicitly listed in the provided "LOCAL GUIDE RECOMMENDATIONS" section.
- `+"`source`"+`: Set to "ai" if the item is your own suggestion based on general knowledge and trends.
- **DO NOT lie.** If it's not in the guide text provided above, mark it as "ai".

**IMPORTANT CHANGE**: Plan the shopping itinerary **DAY BY DAY** according to the user's schedule.
- The top-level keys in "cityShopping" MUST be unique for each day, e.g., "day_1_bangkok", "day_2_pattaya".
- Even if the city is the same for multiple days (e.g., Day 2 Bangkok, Day 3 Bangkok), create SEPARATE entries for each day (e.g., "day_2_bangkok", "day_3_bangkok").
- **CITY SPLITTING**: If a day involves multiple cities (e.g., "Napoli, Pompeii"), you MUST create SEPARATE "cityShopping" entries for each city (e.g., "day_1_napoli", "day_1_pompeii").
- Do NOT merge them into one location "Napoli, Pompeii".
- Assign items to the correct city entry based on where they are bought.
- Distribute the recommended items logically across the days to balance the schedule.
- For EACH item, specify the "shopName" or "mallName" where it can be purchased (e.g., "Big C Market", "Central World").
- **ROUTE OPTIMIZATION**: Sort the items list logically by shopName within each day. Group items that can be bought at the same place together.

**JSON RESPONSE FORMAT**:
You must return a single valid JSON object matching the structure below.
%s`,
		info.Destination,
		info.StartDate, info.EndDate,
		info.Budget,
		companions,
		strings.Join(info.Preferences, ", "),
		strings.Join(info.Purposes, ", "),
		schedule,
		guideExcerpt,
		info.Destination,
		info.Budget,
		info.Budget,
		responseFormat)

	return b.String()
}

// responseFormat is the exact JSON shape the generator must emit; the
// normalizer and reconciler still verify it rather than trusting it.
const responseFormat = `{
  "dutyFree": {
    "departure": {
      "id": "departure",
      "location": "인천공항 면세점 (출국)",
      "timing": "출국 전",
      "items": [
        {
          "id": "unique_id",
          "category": "카테고리 (한국어)",
          "product": "상품명 (한국어)",
          "brand": "브랜드명",
          "estimatedPrice": 35000,
          "localPrice": 25,
          "currencyCode": "USD",
          "reason": "추천 이유 (한국어)",
          "priority": "high/medium/low",
          "purchased": false,
          "source": "ai"
        }
      ],
      "subtotal": 0
    },
    "arrival": {
      "id": "arrival",
      "location": "인천공항 면세점 (입국)",
      "timing": "입국 후",
      "items": [],
      "subtotal": 0
    }
  },
  "cityShopping": {
    "day_1_cityname": {
      "id": "day_1_cityname",
      "location": "도시명 (한국어, 예: 방콕)",
      "day": 1,
      "timing": "여행 중",
      "items": [
        {
          "id": "unique_id_1",
          "category": "식품",
          "product": "말린 망고 (7D Dried Mangoes)",
          "brand": "7D",
          "estimatedPrice": 5000,
          "localPrice": 150,
          "currencyCode": "THB",
          "reason": "가이드 데이터에 있는 필수 기념품입니다.",
          "priority": "high",
          "purchased": false,
          "shopName": "빅씨 마켓",
          "source": "guide"
        }
      ],
      "subtotal": 0,
      "tips": ["쇼핑 꿀팁 (한국어)"]
    }
  },
  "budgetSummary": {
    "dutyFree": 0,
    "cityShopping": 0,
    "total": 0,
    "remaining": 0
  },
  "timeline": ["1일차: 방콕", "2일차: 파타야"]
}`
