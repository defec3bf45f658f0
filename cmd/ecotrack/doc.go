// Command ecotrack is the EcoTrack CLI.
//
// Server and database management:
//
//	ecotrack serve            # start the API server
//	ecotrack migrate          # run migrations
//	ecotrack migrate:rollback
//	ecotrack migrate:status
//	ecotrack seed             # seed the admin user and catalogue
//	ecotrack route:list       # print the routing table
//	ecotrack queue:work       # run the background job worker
//	ecotrack schedule:run     # run the task scheduler
//
// Talking to a deployment (uses the local session file, see login):
//
//	ecotrack login --email you@example.com
//	ecotrack whoami
//	ecotrack materials
//	ecotrack sell --material 1 --quantity 12.5 --address "..." --payout JazzCash --account-name "..." --account-number 03001234567
//	ecotrack pickups
//	ecotrack logout
//
// The deployment targeted by client commands comes from API_BASE_URL.
package main
