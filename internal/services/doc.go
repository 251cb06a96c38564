// package services contains clients for remote catalog providers
package services
