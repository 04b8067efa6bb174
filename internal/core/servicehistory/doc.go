// Package servicehistory turns vehicle service history envelopes into flat
// ClickHouse rows.
//
// Two layouts exist. v1 stores every field as text in service_db; v2 stores
// amounts as Float64, dealer number and mileage as UInt32 and the payment type
// as Nullable(String) in vehicle_db. Both share the same envelope:
//
//	{"code": 200, "message": "ok", "result": {
//	    "vehicleNumber": "KA01AB1234",
//	    "serviceHistoryDetails": [ ... ]}}
//
// Normalize validates the envelope, rewrites DD/MM/YYYY date fields to
// YYYY-MM-DD (unparseable dates are kept as sent) and returns one row per
// visit, each led by the vehicle number. Nothing here talks to storage.
package servicehistory
