// package repositories contains data access layers over the SQLite database
package repositories
