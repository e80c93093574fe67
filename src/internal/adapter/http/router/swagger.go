package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>International Payments Portal API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "International Payments Portal API",
    "version": "1.0.0"
  },
  "paths": {
    "/api/auth/register": {
      "post": {
        "summary": "Register a customer",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/RegisterRequest"}}}
        },
        "responses": {
          "201": {"description": "Registered"},
          "400": {"description": "Validation failed"},
          "409": {"description": "Customer already exists"}
        }
      }
    },
    "/api/auth/login": {
      "post": {
        "summary": "Sign in and obtain a bearer token",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoginRequest"}}}
        },
        "responses": {
          "200": {"description": "Login successful"},
          "401": {"description": "Auth failed"}
        }
      }
    },
    "/api/accounts/details": {
      "get": {
        "summary": "Get the caller's account details",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Account details fetched"},
          "401": {"description": "Missing or invalid token"}
        }
      }
    },
    "/api/payments": {
      "post": {
        "summary": "Create an international payment",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreatePaymentRequest"}}}
        },
        "responses": {
          "201": {"description": "Payment created"},
          "400": {"description": "Validation failed"},
          "403": {"description": "Customers only"},
          "422": {"description": "Insufficient funds"}
        }
      },
      "get": {
        "summary": "List the caller's payments, newest first",
        "security": [{"BearerAuth": []}],
        "responses": {"200": {"description": "Payments fetched"}}
      }
    },
    "/api/payments/pending": {
      "get": {
        "summary": "List unverified payments, oldest first",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Pending payments fetched"},
          "403": {"description": "Employees only"}
        }
      }
    },
    "/api/payments/{id}/verify": {
      "post": {
        "summary": "Verify a payment",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {
          "200": {"description": "Verified"},
          "403": {"description": "Employees only"},
          "404": {"description": "Payment not found"}
        }
      }
    },
    "/api/payments/{id}/submit": {
      "post": {
        "summary": "Submit a verified payment to SWIFT",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
        "responses": {
          "200": {"description": "Submitted"},
          "403": {"description": "Employees only"},
          "404": {"description": "Payment not found"},
          "409": {"description": "Must verify first"}
        }
      }
    },
    "/api/rates": {
      "get": {
        "summary": "List conversion rates to ZAR",
        "responses": {"200": {"description": "Rates fetched"}}
      }
    },
    "/api/rates/quote": {
      "get": {
        "summary": "Preview the ZAR amount for a payment",
        "parameters": [
          {"name": "amount", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "currency", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Quote calculated"},
          "400": {"description": "Validation failed"}
        }
      }
    },
    "/healthz": {
      "get": {
        "summary": "Liveness probe",
        "responses": {"200": {"description": "OK"}}
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}
    },
    "schemas": {
      "RegisterRequest": {
        "type": "object",
        "required": ["fullName", "idNumber", "accountNumber", "password"],
        "properties": {
          "fullName": {"type": "string", "example": "Jane Doe"},
          "idNumber": {"type": "string", "example": "1234567890123"},
          "accountNumber": {"type": "string", "example": "1000000001"},
          "password": {"type": "string", "format": "password"}
        }
      },
      "LoginRequest": {
        "type": "object",
        "required": ["accountNumber", "password"],
        "properties": {
          "accountNumber": {"type": "string"},
          "password": {"type": "string", "format": "password"}
        }
      },
      "CreatePaymentRequest": {
        "type": "object",
        "required": ["amount", "currency", "provider", "swiftCode", "recipientAccount"],
        "properties": {
          "amount": {"type": "string", "example": "100.00"},
          "currency": {"type": "string", "example": "USD"},
          "provider": {"type": "string", "example": "SWIFT"},
          "swiftCode": {"type": "string", "example": "ABCDZAJJ"},
          "recipientAccount": {"type": "string", "example": "12345678901"}
        }
      }
    }
  }
}`
