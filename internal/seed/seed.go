// Package seed generates the sample campus data a session is populated
// with at login. It stands in for the upstream records system: anything
// able to produce a session.Data snapshot can replace it without touching
// the domain logic.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kwamena/ugrecover/internal/model"
	"github.com/kwamena/ugrecover/internal/session"
)

// DemoStudentEmail is the claimant identity used for student-facing seed
// claims.
const DemoStudentEmail = "kofi.student@st.ug.edu.gh"

var pointSeeds = []struct {
	name, location, address, description string
	capacity                             int
}{
	{"Balme Library Front Desk", "Balme Library", "University Square, Legon", "Main library collection point", 40},
	{"Commonwealth Hall Porter's Lodge", "Commonwealth Hall", "Commonwealth Rd, Legon", "Hall porter's lodge", 25},
	{"JQB Security Post", "Jones Quartey Building", "Academic Area, Legon", "Lecture block security post", 30},
	{"Night Market Office", "Night Market", "Evandy Rd, Legon", "Market traders' office", 15},
	{"Great Hall Security", "Great Hall", "Great Hall Loop, Legon", "Ceremonial grounds security", 20},
}

var officerSeeds = []struct {
	name, email, phone, rank string
}{
	{"Abena Owusu", "abena.owusu@ug.edu.gh", "+233201234501", "Senior Officer"},
	{"Yaw Mensah", "yaw.mensah@ug.edu.gh", "+233201234502", "Officer"},
	{"Efua Asante", "efua.asante@ug.edu.gh", "+233201234503", "Officer"},
	{"Kwesi Boateng", "kwesi.boateng@ug.edu.gh", "+233201234504", "Junior Officer"},
	{"Adjoa Darko", "adjoa.darko@ug.edu.gh", "+233201234505", "Senior Officer"},
	{"Kojo Appiah", "kojo.appiah@ug.edu.gh", "+233201234506", "Officer"},
}

var categorySeeds = []struct {
	name, description, color, icon string
}{
	{"Electronics", "Laptops, phones, chargers and accessories", "#2563eb", model.IconLaptop},
	{"Phones", "Mobile phones and tablets", "#7c3aed", model.IconPhone},
	{"Wallets & Purses", "Wallets, purses and loose cards", "#d97706", model.IconWallet},
	{"Keys", "Room, office and vehicle keys", "#64748b", model.IconKeys},
	{"Books & Notes", "Textbooks, notebooks and handouts", "#16a34a", model.IconBook},
	{"Clothing", "Jackets, scarves and other apparel", "#db2777", model.IconClothing},
	{"ID Cards", "Student and staff identification", "#dc2626", model.IconCard},
	{"Bags", "Backpacks and handbags", "#0891b2", model.IconBag},
}

var itemNames = map[string][]string{
	"Electronics":      {"HP Laptop", "Dell Charger", "USB Drive", "Scientific Calculator", "Wireless Mouse"},
	"Phones":           {"Samsung Galaxy A14", "iPhone 11", "Tecno Spark", "Infinix Note"},
	"Wallets & Purses": {"Brown Leather Wallet", "Black Purse", "Canvas Wallet"},
	"Keys":             {"Room Key Bunch", "Car Key", "Office Key"},
	"Books & Notes":    {"Organic Chemistry Textbook", "Statistics Notebook", "Economics Handout"},
	"Clothing":         {"Denim Jacket", "Kente Scarf", "Black Hoodie"},
	"ID Cards":         {"Student ID Card", "Staff ID Card"},
	"Bags":             {"Grey Backpack", "Laptop Bag", "Tote Bag"},
}

// ForRole builds the snapshot a fresh session is loaded with. Officers and
// administrators see the full registry; a student session carries only
// claims filed by the demo student identity.
func ForRole(role string) session.Data {
	return generate(role, rand.New(rand.NewSource(42)))
}

func generate(role string, rng *rand.Rand) session.Data {
	now := time.Now()
	var data session.Data

	for i, p := range pointSeeds {
		data.Points = append(data.Points, model.CollectionPoint{
			ID:           int64(i + 1),
			Name:         p.name,
			Location:     p.location,
			Address:      p.address,
			Status:       model.PointStatusActive,
			Capacity:     p.capacity,
			CreatedAt:    now.AddDate(0, -6, 0),
			LastActivity: now.AddDate(0, 0, -rng.Intn(14)),
			Description:  p.description,
		})
	}

	for i, o := range officerSeeds {
		officer := model.Officer{
			ID:       int64(i + 1),
			Name:     o.name,
			Email:    o.email,
			Phone:    o.phone,
			Rank:     o.rank,
			Status:   model.OfficerStatusActive,
			JoinDate: now.AddDate(-1, -rng.Intn(12), 0),
		}
		// Assign the first few officers round-robin across points.
		if i < len(pointSeeds) {
			pointID := int64(i + 1)
			officer.Assigned = true
			officer.AssignedPointID = &pointID
		}
		data.Officers = append(data.Officers, officer)
	}

	for i, c := range categorySeeds {
		data.Categories = append(data.Categories, model.Category{
			ID:          int64(i + 1),
			Name:        c.name,
			Description: c.description,
			Color:       c.color,
			Icon:        c.icon,
			Status:      model.CategoryStatusActive,
			CreatedAt:   now.AddDate(0, -6, 0),
			LastUpdated: now.AddDate(0, -1, 0),
		})
	}

	itemID := int64(1)
	for _, cat := range categorySeeds {
		names := itemNames[cat.name]
		count := 2 + rng.Intn(2)
		for n := 0; n < count && n < len(names); n++ {
			pointIdx := rng.Intn(len(data.Points))
			point := &data.Points[pointIdx]
			if point.CurrentItems >= point.Capacity {
				continue
			}
			keyedIn := now.AddDate(0, 0, -rng.Intn(25))
			founder := officerSeeds[rng.Intn(len(officerSeeds))].name

			data.Items = append(data.Items, model.LostItem{
				ID:               itemID,
				Name:             names[n],
				Description:      fmt.Sprintf("%s handed in at %s", names[n], point.Location),
				Category:         cat.name,
				FoundAt:          point.Location,
				PointID:          point.ID,
				CheckpointOffice: point.Name,
				FoundDate:        keyedIn.AddDate(0, 0, -1),
				KeyedInDate:      keyedIn,
				RetentionDays:    30,
				Status:           model.ItemStatusAvailable,
				Founder:          founder,
				Images:           []string{fmt.Sprintf("/api/items/%d/image", itemID)},
			})
			point.CurrentItems++
			data.Categories[categoryIndex(cat.name)].ItemCount++
			itemID++
		}
	}

	// A handful of claims against early items. Student sessions only see
	// claims filed by the demo student.
	claimants := []struct{ name, email, phone, studentID string }{
		{"Kofi Mensah", DemoStudentEmail, "+233209876501", "10876541"},
		{"Ama Serwaa", "ama.serwaa@st.ug.edu.gh", "+233209876502", "10876542"},
		{"Nana Adjei", "nana.adjei@st.ug.edu.gh", "+233209876503", "10876543"},
	}
	claimID := int64(1)
	for i, cl := range claimants {
		if role == model.RoleStudent && cl.email != DemoStudentEmail {
			continue
		}
		if i >= len(data.Items) {
			break
		}
		item := &data.Items[i]
		data.Claims = append(data.Claims, model.ClaimRequest{
			ID:                    claimID,
			Ref:                   fmt.Sprintf("seed-claim-%d", claimID),
			ItemID:                item.ID,
			ItemName:              item.Name,
			ItemImage:             item.Images[0],
			ClaimantName:          cl.name,
			ClaimantEmail:         cl.email,
			ClaimantPhone:         cl.phone,
			ClaimantStudentID:     cl.studentID,
			Description:           fmt.Sprintf("Lost my %s around %s", item.Name, item.FoundAt),
			IdentificationDetails: "Can describe distinguishing marks and contents",
			Status:                model.ClaimStatusPending,
			SubmittedAt:           now.AddDate(0, 0, -rng.Intn(5)),
			CollectionPoint:       item.CheckpointOffice,
		})
		item.Status = model.ItemStatusPending
		claimID++
	}

	return data
}

func categoryIndex(name string) int {
	for i, c := range categorySeeds {
		if c.name == name {
			return i
		}
	}
	return 0
}
