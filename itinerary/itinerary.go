package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripcart/genai"
	"tripcart/models"
	"tripcart/planner"
	"tripcart/utils"
)

const parsePrompt = `
Analyze this travel itinerary file (image or PDF).
Extract the following information:
1. Destination (City name in Korean, e.g., 방콕, 다낭)
2. Start Date (YYYY-MM-DD)
3. End Date (YYYY-MM-DD)
4. Daily Schedule: For each day, extract the Day number, Date, and Main Location/City (in Korean).

Return ONLY a JSON object with these keys:
- "destination": string
- "startDate": string (YYYY-MM-DD)
- "endDate": string (YYYY-MM-DD)
- "schedule": array of objects { "day": number, "date": string, "location": string }

If you cannot find specific information, make a reasonable guess based on context or return null/empty.
IMPORTANT: Ensure "location" is the city or main area name in Korean (e.g., "다낭", "호이안", "바나힐"). If multiple cities, separate them with commas (e.g., "다낭, 호이안").
`

// ParsedItinerary is what the upload screen pre-fills the intake form with.
type ParsedItinerary struct {
	Destination string                 `json:"destination"`
	StartDate   string                 `json:"startDate"`
	EndDate     string                 `json:"endDate"`
	Schedule    []models.ScheduleEntry `json:"schedule"`
}

type Handlers struct {
	AI *genai.Client
}

func NewHandlers(ai *genai.Client) *Handlers {
	return &Handlers{AI: ai}
}

// stripDataURL drops a leading "data:<mime>;base64," wrapper, browsers send
// FileReader output verbatim.
func stripDataURL(b64 string) string {
	if strings.HasPrefix(b64, "data:") {
		if idx := strings.Index(b64, "base64,"); idx != -1 {
			return b64[idx+len("base64,"):]
		}
	}
	return b64
}

// POST /api/itinerary/parse
func (h *Handlers) ParseItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if utils.GetUserIDFromRequest(r) == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		FileBase64 string `json:"fileBase64"`
		MimeType   string `json:"mimeType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.FileBase64 == "" || body.MimeType == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "fileBase64 and mimeType are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	raw, err := h.AI.GenerateWithFile(ctx, parsePrompt, genai.InlineData{
		MimeType: body.MimeType,
		Data:     stripDataURL(body.FileBase64),
	})
	if err != nil {
		if errors.Is(err, genai.ErrMissingAPIKey) {
			utils.RespondWithError(w, http.StatusInternalServerError, "AI service is not configured")
			return
		}
		utils.RespondWithError(w, http.StatusBadGateway, "Itinerary parsing failed")
		return
	}

	var parsed ParsedItinerary
	if err := json.Unmarshal([]byte(planner.ExtractJSON(raw)), &parsed); err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "AI response could not be parsed, please try again")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, parsed)
}
