package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Demo client data pools
var (
	clientNames = []string{
		"Carlos Mendoza", "Lucía Herrera", "Andrés Rojas", "Valentina Castro",
		"Jorge Pineda", "Camila Torres", "Ricardo Salas", "Daniela Ortiz",
	}
	brands        = []string{"Lenovo", "HP", "Dell", "Asus", "Acer", "Apple"}
	systems       = []string{"Windows 11", "Windows 10", "Ubuntu 24.04", "macOS Sonoma"}
	computerTypes = []string{"Portátil", "Escritorio", "Todo en uno"}
	conditions    = []string{"Bueno", "Regular", "Malo"}
)

var authToken string

func authorizedRequest(method, url string, body *bytes.Buffer) (*http.Response, error) {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

// register creates a demo technician account and captures its token.
func register(apiURL string) error {
	suffix := strconv.Itoa(rand.Intn(100000))
	payload := map[string]string{
		"username":  "simtech" + suffix,
		"email":     "simtech" + suffix + "@xnorik.com",
		"password":  "simulator-pass-1",
		"full_name": "Técnico Simulado",
	}
	data, _ := json.Marshal(payload)

	resp, err := authorizedRequest(http.MethodPost, apiURL+"/api/auth/register", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("register failed: %s: %s", resp.Status, body)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	authToken = out.Token
	return nil
}

func createService(apiURL string) (id, code string, err error) {
	name := clientNames[rand.Intn(len(clientNames))]
	payload := map[string]string{
		"client_name":      name,
		"client_address":   "Calle " + strconv.Itoa(rand.Intn(90)+10) + " #12-34",
		"client_id_number": strconv.Itoa(rand.Intn(89999999) + 10000000),
		"client_phone":     "3" + strconv.Itoa(rand.Intn(999999999)),
		"client_email":     "cliente" + strconv.Itoa(rand.Intn(1000)) + "@example.com",
		"technician_name":  "Técnico Simulado",
		"technician_phone": "3001234567",
		"technician_email": "simtech@xnorik.com",
		"operating_system": systems[rand.Intn(len(systems))],
		"computer_brand":   brands[rand.Intn(len(brands))],
		"computer_type":    computerTypes[rand.Intn(len(computerTypes))],
		"maintenance_type": "Mantenimiento preventivo",
		"keyboard_state":   conditions[rand.Intn(len(conditions))],
		"screen_state":     conditions[rand.Intn(len(conditions))],
		"mouse_state":      conditions[rand.Intn(len(conditions))],
		"dvd_state":        conditions[rand.Intn(len(conditions))],
		"case_state":       conditions[rand.Intn(len(conditions))],
		"works_correctly":  "Sí",
		"observations":     "Equipo de " + name + " generado por el simulador",
	}
	data, _ := json.Marshal(payload)

	resp, err := authorizedRequest(http.MethodPost, apiURL+"/api/services", bytes.NewBuffer(data))
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("create failed: %s: %s", resp.Status, body)
	}

	var out struct {
		ID           string `json:"id"`
		TrackingCode string `json:"tracking_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", err
	}
	return out.ID, out.TrackingCode, nil
}

func transition(apiURL, id, action string) error {
	resp, err := authorizedRequest(http.MethodPost, apiURL+"/api/services/"+id+"/"+action, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s failed: %s: %s", action, resp.Status, body)
	}
	return nil
}

func track(apiURL, code string) (string, int, error) {
	resp, err := http.Get(apiURL + "/api/track/" + code)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	var out struct {
		Found    bool `json:"found"`
		Progress int  `json:"progress"`
		Record   struct {
			CurrentStatus string `json:"current_status"`
		} `json:"record"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, err
	}
	if !out.Found {
		return "", 0, fmt.Errorf("tracking code %s not found", code)
	}
	return out.Record.CurrentStatus, out.Progress, nil
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	numServices := 3
	if v := os.Getenv("NUM_SERVICES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			numServices = parsed
		}
	}

	pause := 2 * time.Second
	if v := os.Getenv("STEP_PAUSE"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			pause = parsed
		}
	}

	if err := register(apiURL); err != nil {
		log.WithError(err).Fatal("Failed to register simulator technician")
	}
	log.Info("Simulator technician registered")

	for i := 0; i < numServices; i++ {
		id, code, err := createService(apiURL)
		if err != nil {
			log.WithError(err).Error("Failed to create service")
			continue
		}
		log.WithFields(log.Fields{"id": id, "code": code}).Info("Service created")

		// pending -> diagnosis, then one advance per remaining stage
		steps := []string{"start", "advance", "advance", "advance", "advance"}
		for _, action := range steps {
			time.Sleep(pause)
			if err := transition(apiURL, id, action); err != nil {
				log.WithError(err).WithField("id", id).Error("Transition failed")
				break
			}
			current, progress, err := track(apiURL, code)
			if err != nil {
				log.WithError(err).WithField("code", code).Warn("Tracking lookup failed")
				continue
			}
			log.WithFields(log.Fields{
				"code":     code,
				"status":   current,
				"progress": progress,
			}).Info("Status advanced")
		}
	}

	log.Info("Simulation complete")
}
