// Command owm-mock serves a deterministic fake of the OpenWeatherMap
// endpoints weatherd talks to, for local development without a real
// API key.
//
// Usage:
//
//	go run ./cmd/owm-mock -addr :9090
//	OWM_API_KEY=anything OWM_BASE_URL=http://localhost:9090 go run ./cmd/weatherd
//
// Pass -fail-onecall to disable the unified forecast endpoint and
// exercise the legacy fallback path end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

var baseDate = time.Date(2024, time.April, 26, 0, 0, 0, 0, time.UTC)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	failOneCall := flag.Bool("fail-onecall", false, "return 403 from /data/2.5/onecall to force the legacy fallback")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /data/2.5/weather", handleWeather)
	mux.HandleFunc("GET /data/2.5/forecast", handleForecast)
	mux.HandleFunc("GET /geo/1.0/direct", handleGeocode)
	mux.HandleFunc("GET /data/2.5/onecall", func(w http.ResponseWriter, r *http.Request) {
		if *failOneCall {
			writeJSON(w, http.StatusForbidden, map[string]string{
				"cod": "403", "message": "onecall requires a subscription",
			})
			return
		}
		handleOneCall(w, r)
	})

	log.Printf("owm-mock listening on %s (fail-onecall=%v)", *addr, *failOneCall)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func handleWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q != "" && q != "London" {
		writeJSON(w, http.StatusNotFound, map[string]string{"cod": "404", "message": "city not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":  "London",
		"coord": map[string]float64{"lat": 51.5074, "lon": -0.1278},
		"main": map[string]any{
			"temp": 15.2, "feels_like": 14.1, "humidity": 72, "pressure": 1012,
		},
		"wind":       map[string]float64{"speed": 4.6},
		"weather":    []map[string]string{{"description": "overcast clouds", "icon": "04d"}},
		"visibility": 10000,
		"sys": map[string]int64{
			"sunrise": baseDate.Add(5 * time.Hour).Unix(),
			"sunset":  baseDate.Add(19 * time.Hour).Unix(),
		},
	})
}

func handleOneCall(w http.ResponseWriter, _ *http.Request) {
	daily := make([]map[string]any, 0, 10)
	for i := 0; i < 10; i++ {
		daily = append(daily, map[string]any{
			"dt": baseDate.AddDate(0, 0, i).Unix(),
			"temp": map[string]float64{
				"day": 15 + float64(i%4), "min": 10 + float64(i%3), "max": 19 + float64(i%5),
			},
			"weather":    []map[string]string{{"description": "scattered clouds", "icon": "03d"}},
			"humidity":   65 + i,
			"wind_speed": 3.5,
			"pop":        0.1 * float64(i%5),
			"uvi":        4.0,
		})
	}
	hourly := make([]map[string]any, 0, 24)
	for i := 0; i < 24; i++ {
		hourly = append(hourly, map[string]any{
			"dt":         baseDate.Add(time.Duration(i) * time.Hour).Unix(),
			"temp":       14 + float64(i%6),
			"weather":    []map[string]string{{"description": "scattered clouds", "icon": "03d"}},
			"pop":        0.2,
			"wind_speed": 3.0,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"daily":  daily,
		"hourly": hourly,
		"alerts": []map[string]any{{
			"sender_name": "Met Office",
			"event":       "Wind",
			"start":       baseDate.Unix(),
			"end":         baseDate.Add(12 * time.Hour).Unix(),
			"description": "Severe gale warning in effect",
		}},
	})
}

func handleForecast(w http.ResponseWriter, _ *http.Request) {
	list := make([]map[string]any, 0, 40)
	for i := 0; i < 40; i++ {
		ts := baseDate.Add(time.Duration(i) * 3 * time.Hour)
		list = append(list, map[string]any{
			"dt":     ts.Unix(),
			"dt_txt": ts.Format("2006-01-02 15:04:05"),
			"main": map[string]any{
				"temp": 13 + float64(i%8), "temp_min": 11.0, "temp_max": 17.0, "humidity": 70,
			},
			"weather": []map[string]string{{"description": "light rain", "icon": "10d"}},
			"wind":    map[string]float64{"speed": 4.1},
			"pop":     0.3,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"list": list})
}

func handleGeocode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, []map[string]any{
		{"name": "London", "state": "England", "country": "GB", "lat": 51.5074, "lon": -0.1278},
		{"name": "London", "state": "Ontario", "country": "CA", "lat": 42.9836, "lon": -81.2497},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Println("encode error:", err)
	}
}
