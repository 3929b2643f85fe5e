package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kwamena/ugrecover/internal/db"
	"github.com/kwamena/ugrecover/internal/model"
	"github.com/kwamena/ugrecover/internal/query"
	"github.com/kwamena/ugrecover/internal/session"
	"github.com/kwamena/ugrecover/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	sessions := session.NewManager(func(role string) session.Data { return session.Data{} })
	router := NewRouter(database, testJWTSecret, sessions)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateUser(ctx, database, model.User{
		Username: "sudo", PasswordHash: string(hash), Role: model.RoleSudo,
	})
	store.CreateUser(ctx, database, model.User{
		Username: "ama", Email: "ama@st.ug.edu.gh", PasswordHash: string(hash), Role: model.RoleStudent,
	})

	return server
}

func login(t *testing.T, server *httptest.Server, username string) (string, string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	json.NewDecoder(resp.Body).Decode(&loginResp)
	if loginResp.AccessToken == "" {
		t.Fatal("empty access token from login")
	}
	return loginResp.AccessToken, loginResp.RefreshToken
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func doJSON(t *testing.T, req *http.Request, wantStatus int, out any) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d", req.Method, req.URL.Path, wantStatus, resp.StatusCode)
	}
	if out != nil {
		json.NewDecoder(resp.Body).Decode(out)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	server := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"username": "sudo", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	server := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/points")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestFullRegistryFlow(t *testing.T) {
	server := setupTestServer(t)
	token, _ := login(t, server, "sudo")

	// Create a collection point.
	var point model.CollectionPoint
	req, _ := authRequest("POST", server.URL+"/api/points", token, map[string]any{
		"name": "Balme Library Front Desk", "location": "Balme Library", "capacity": 5,
	})
	doJSON(t, req, http.StatusCreated, &point)
	if point.ID == 0 || point.Status != model.PointStatusActive {
		t.Fatalf("unexpected point: %+v", point)
	}

	// Create a category and an officer, and assign the officer.
	var category model.Category
	req, _ = authRequest("POST", server.URL+"/api/categories", token, map[string]string{
		"name": "Electronics", "icon": model.IconLaptop,
	})
	doJSON(t, req, http.StatusCreated, &category)

	var officer model.Officer
	req, _ = authRequest("POST", server.URL+"/api/officers", token, map[string]string{
		"name": "Abena Owusu", "email": "abena@ug.edu.gh",
	})
	doJSON(t, req, http.StatusCreated, &officer)

	req, _ = authRequest("POST", fmt.Sprintf("%s/api/officers/%d/assign", server.URL, officer.ID), token,
		map[string]int64{"point_id": point.ID})
	doJSON(t, req, http.StatusOK, &officer)
	if !officer.Assigned || officer.AssignedPoint != "Balme Library Front Desk" {
		t.Fatalf("expected officer assigned, got %+v", officer)
	}

	// Log an item at the point.
	var item model.LostItem
	req, _ = authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name": "HP Laptop", "category": "Electronics", "point_id": point.ID,
		"retention_days": 30, "images": []string{"seed.jpg"},
	})
	doJSON(t, req, http.StatusCreated, &item)
	if item.Status != model.ItemStatusAvailable || item.MainImage != "seed.jpg" {
		t.Fatalf("unexpected item: %+v", item)
	}

	// Items come back annotated with an expiry countdown.
	var page struct {
		Items []model.LostItem `json:"items"`
		Total int              `json:"total"`
	}
	req, _ = authRequest("GET", server.URL+"/api/items?q=laptop", token, nil)
	doJSON(t, req, http.StatusOK, &page)
	if page.Total != 1 || page.Items[0].UrgencyTier == "" {
		t.Fatalf("unexpected item page: %+v", page)
	}

	// Claim the item and approve the claim.
	var claim model.ClaimRequest
	req, _ = authRequest("POST", server.URL+"/api/claims", token, map[string]any{
		"item_id": item.ID, "claimant_name": "Ama Serwaa", "claimant_email": "ama@st.ug.edu.gh",
		"description": "black HP laptop", "identification_details": "serial on the underside",
	})
	doJSON(t, req, http.StatusCreated, &claim)
	if claim.Status != model.ClaimStatusPending || claim.Ref == "" {
		t.Fatalf("unexpected claim: %+v", claim)
	}

	req, _ = authRequest("POST", fmt.Sprintf("%s/api/claims/%d/review", server.URL, claim.ID), token,
		map[string]string{"status": model.ClaimStatusApproved, "notes": "verified"})
	doJSON(t, req, http.StatusOK, &claim)
	if claim.Status != model.ClaimStatusApproved {
		t.Fatalf("expected approved claim, got %+v", claim)
	}

	req, _ = authRequest("GET", fmt.Sprintf("%s/api/items/%d", server.URL, item.ID), token, nil)
	doJSON(t, req, http.StatusOK, &item)
	if item.Status != model.ItemStatusClaimed {
		t.Fatalf("expected claimed item, got %q", item.Status)
	}
}

func TestItemDateAccessorMatchesFilterFormat(t *testing.T) {
	// The date accessors must emit bare YYYY-MM-DD: the range filter
	// compares lexicographically against bare-date bounds, and a full
	// timestamp sorts after its own day, losing records dated on the
	// inclusive `to` bound.
	it := model.LostItem{KeyedInDate: time.Date(2025, 1, 8, 10, 30, 0, 0, time.UTC)}
	if got := itemAccessors.Date(it); got != "2025-01-08" {
		t.Fatalf("expected bare date '2025-01-08', got %q", got)
	}

	filtered := query.FilterDateRange([]model.LostItem{it}, "", "2025-01-08", itemAccessors.Date)
	if len(filtered) != 1 {
		t.Fatalf("expected item dated on the 'to' bound to be included, got %d results", len(filtered))
	}

	point := model.CollectionPoint{CreatedAt: time.Date(2025, 1, 8, 23, 59, 59, 0, time.UTC)}
	if got := pointAccessors.Date(point); got != "2025-01-08" {
		t.Errorf("expected bare date for point, got %q", got)
	}
	officer := model.Officer{JoinDate: time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)}
	if got := officerAccessors.Date(officer); got != "2025-01-08" {
		t.Errorf("expected bare date for officer, got %q", got)
	}
	claim := model.ClaimRequest{SubmittedAt: time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)}
	if got := claimAccessors.Date(claim); got != "2025-01-08" {
		t.Errorf("expected bare date for claim, got %q", got)
	}
}

func TestItemListDateRangeBoundsInclusive(t *testing.T) {
	server := setupTestServer(t)
	token, _ := login(t, server, "sudo")

	var point model.CollectionPoint
	req, _ := authRequest("POST", server.URL+"/api/points", token, map[string]any{
		"name": "Balme Library Front Desk", "location": "Balme Library", "capacity": 5,
	})
	doJSON(t, req, http.StatusCreated, &point)
	req, _ = authRequest("POST", server.URL+"/api/categories", token, map[string]string{"name": "Electronics"})
	doJSON(t, req, http.StatusCreated, nil)

	var item model.LostItem
	req, _ = authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name": "HP Laptop", "category": "Electronics", "point_id": point.ID,
		"retention_days": 30, "images": []string{"a.jpg"},
	})
	doJSON(t, req, http.StatusCreated, &item)

	today := item.KeyedInDate.Format(time.DateOnly)
	yesterday := item.KeyedInDate.AddDate(0, 0, -1).Format(time.DateOnly)
	tomorrow := item.KeyedInDate.AddDate(0, 0, 1).Format(time.DateOnly)

	var page struct {
		Total int `json:"total"`
	}

	// Both bounds are inclusive: an item keyed in on the bound day counts.
	for _, params := range []string{
		"to=" + today,
		"from=" + today,
		"from=" + today + "&to=" + today,
	} {
		req, _ = authRequest("GET", server.URL+"/api/items?"+params, token, nil)
		doJSON(t, req, http.StatusOK, &page)
		if page.Total != 1 {
			t.Errorf("expected 1 item for %q, got %d", params, page.Total)
		}
	}

	req, _ = authRequest("GET", server.URL+"/api/items?to="+yesterday, token, nil)
	doJSON(t, req, http.StatusOK, &page)
	if page.Total != 0 {
		t.Errorf("expected 0 items before the window, got %d", page.Total)
	}
	req, _ = authRequest("GET", server.URL+"/api/items?from="+tomorrow, token, nil)
	doJSON(t, req, http.StatusOK, &page)
	if page.Total != 0 {
		t.Errorf("expected 0 items after the window, got %d", page.Total)
	}
}

func TestStudentCannotReadAnotherStudentsClaim(t *testing.T) {
	database := db.NewTestDB(t)
	sessions := session.NewManager(func(role string) session.Data {
		return session.Data{
			Points: []model.CollectionPoint{
				{ID: 1, Name: "Balme Library Front Desk", Location: "Balme Library", Capacity: 5, Status: model.PointStatusActive},
			},
			Items: []model.LostItem{
				{ID: 1, Name: "HP Laptop", PointID: 1, Status: model.ItemStatusPending, KeyedInDate: time.Now(), RetentionDays: 30, Images: []string{"a.jpg"}},
			},
			Claims: []model.ClaimRequest{
				{ID: 1, ItemID: 1, ClaimantName: "Ama Serwaa", ClaimantEmail: "ama@st.ug.edu.gh", Status: model.ClaimStatusPending},
				{ID: 2, ItemID: 1, ClaimantName: "Kofi Boateng", ClaimantEmail: "kofi@st.ug.edu.gh", Status: model.ClaimStatusPending},
			},
		}
	})
	server := httptest.NewServer(NewRouter(database, testJWTSecret, sessions))
	t.Cleanup(server.Close)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateUser(context.Background(), database, model.User{
		Username: "ama", Email: "ama@st.ug.edu.gh", PasswordHash: string(hash), Role: model.RoleStudent,
	})

	token, _ := login(t, server, "ama")

	var claim model.ClaimRequest
	req, _ := authRequest("GET", server.URL+"/api/claims/1", token, nil)
	doJSON(t, req, http.StatusOK, &claim)
	if claim.ClaimantEmail != "ama@st.ug.edu.gh" {
		t.Fatalf("unexpected claim: %+v", claim)
	}

	// Another student's claim answers with the standard forbidden shape.
	var errResp struct {
		Error string `json:"error"`
	}
	req, _ = authRequest("GET", server.URL+"/api/claims/2", token, nil)
	doJSON(t, req, http.StatusForbidden, &errResp)
	if errResp.Error == "" {
		t.Error("expected a JSON error body")
	}

	// And the listing never surfaces it.
	var page struct {
		Items []model.ClaimRequest `json:"items"`
		Total int                  `json:"total"`
	}
	req, _ = authRequest("GET", server.URL+"/api/claims", token, nil)
	doJSON(t, req, http.StatusOK, &page)
	if page.Total != 1 || page.Items[0].ClaimantEmail != "ama@st.ug.edu.gh" {
		t.Fatalf("expected only own claims in listing, got %+v", page)
	}
}

func TestStudentForbiddenFromManagement(t *testing.T) {
	server := setupTestServer(t)
	token, _ := login(t, server, "ama")

	req, _ := authRequest("POST", server.URL+"/api/points", token, map[string]any{
		"name": "x", "location": "y", "capacity": 1,
	})
	doJSON(t, req, http.StatusForbidden, nil)

	req, _ = authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name": "x", "category": "y", "point_id": 1, "retention_days": 30, "images": []string{"a.jpg"},
	})
	doJSON(t, req, http.StatusForbidden, nil)

	// Reports are sudo-only, enforced before the handler runs.
	req, _ = authRequest("GET", server.URL+"/api/reports/items.xlsx", token, nil)
	doJSON(t, req, http.StatusForbidden, nil)
}

func TestDomainErrorsMapToStatusCodes(t *testing.T) {
	server := setupTestServer(t)
	token, _ := login(t, server, "sudo")

	// Unknown entity -> 404.
	req, _ := authRequest("GET", server.URL+"/api/points/99", token, nil)
	doJSON(t, req, http.StatusNotFound, nil)

	// Validation failure -> 400.
	req, _ = authRequest("POST", server.URL+"/api/points", token, map[string]any{
		"name": "", "location": "x", "capacity": 1,
	})
	doJSON(t, req, http.StatusBadRequest, nil)

	// Conflict -> 409: capacity 1, second item does not fit.
	var point model.CollectionPoint
	req, _ = authRequest("POST", server.URL+"/api/points", token, map[string]any{
		"name": "Kiosk", "location": "Night Market", "capacity": 1,
	})
	doJSON(t, req, http.StatusCreated, &point)
	req, _ = authRequest("POST", server.URL+"/api/categories", token, map[string]string{"name": "Keys"})
	doJSON(t, req, http.StatusCreated, nil)

	logItem := func(name string, want int) {
		req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
			"name": name, "category": "Keys", "point_id": point.ID,
			"retention_days": 30, "images": []string{"a.jpg"},
		})
		doJSON(t, req, want, nil)
	}
	logItem("Room Key", http.StatusCreated)
	logItem("Car Key", http.StatusConflict)
}

func TestRefreshRotatesTokens(t *testing.T) {
	server := setupTestServer(t)
	_, refresh := login(t, server, "sudo")

	body, _ := json.Marshal(map[string]string{"refresh_token": refresh})
	resp, err := http.Post(server.URL+"/api/auth/refresh", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("refresh request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh failed: %d", resp.StatusCode)
	}

	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	json.NewDecoder(resp.Body).Decode(&pair)
	if pair.AccessToken == "" || pair.RefreshToken == refresh {
		t.Fatalf("expected a rotated token pair, got %+v", pair)
	}

	// The consumed refresh token cannot be used again.
	resp2, _ := http.Post(server.URL+"/api/auth/refresh", "application/json",
		bytes.NewReader(body))
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 on refresh token reuse, got %d", resp2.StatusCode)
	}
	resp2.Body.Close()
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	server := setupTestServer(t)
	token, _ := login(t, server, "sudo")

	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	doJSON(t, req, http.StatusOK, nil)

	// The same access token is now revoked.
	req, _ = authRequest("GET", server.URL+"/api/points", token, nil)
	doJSON(t, req, http.StatusUnauthorized, nil)
}

func TestItemImageRoundTrip(t *testing.T) {
	server := setupTestServer(t)
	token, _ := login(t, server, "sudo")

	var point model.CollectionPoint
	req, _ := authRequest("POST", server.URL+"/api/points", token, map[string]any{
		"name": "JQB Security Post", "location": "JQB", "capacity": 5,
	})
	doJSON(t, req, http.StatusCreated, &point)
	req, _ = authRequest("POST", server.URL+"/api/categories", token, map[string]string{"name": "Bags"})
	doJSON(t, req, http.StatusCreated, nil)

	var item model.LostItem
	req, _ = authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name": "Grey Backpack", "category": "Bags", "point_id": point.ID,
		"retention_days": 30, "images": []string{"placeholder.jpg"},
	})
	doJSON(t, req, http.StatusCreated, &item)

	// Upload a real PNG.
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}

	upload, _ := http.NewRequest("PUT",
		fmt.Sprintf("%s/api/items/%d/image", server.URL, item.ID), &buf)
	upload.Header.Set("Authorization", "Bearer "+token)
	doJSON(t, upload, http.StatusOK, &item)
	wantURI := fmt.Sprintf("/api/items/%d/image", item.ID)
	if item.MainImage != wantURI {
		t.Fatalf("expected main image %q, got %q", wantURI, item.MainImage)
	}

	// Fetch both the photo and the thumbnail.
	for _, suffix := range []string{"", "?thumb=1"} {
		req, _ = authRequest("GET", server.URL+wantURI+suffix, token, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("fetching image: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 fetching image, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("expected image/jpeg, got %q", ct)
		}
		resp.Body.Close()
	}
}
