// Package hclcfg provides the concrete HCL implementation of the profile
// loading interface defined in the `config` package. It is responsible for
// file parsing and HCL-to-model translation.
package hclcfg
